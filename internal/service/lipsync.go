package service

import "math"

const (
	// minAudioBytes is the smallest audio track worth measuring.
	minAudioBytes = 1024
	// idealKBps is the byte rate a typical compressed speech track sits at.
	idealKBps = 16.0
)

// lipSyncIntegrity estimates audiovisual sync from the audio byte rate
// against the sampled frame count. It is a byte-rate proxy, not true sync
// analysis; the formula is a behavioral contract and must not be tuned.
// Unusable inputs return the 0.5 sentinel, never an absent value.
func lipSyncIntegrity(audioLen, frameCount, intervalSeconds int) float64 {
	if audioLen < minAudioBytes || frameCount < 2 {
		return 0.5
	}

	duration := float64(frameCount * intervalSeconds)
	bytesPerSecond := float64(audioLen) / duration

	ratio := bytesPerSecond / 1000
	if ratio < 0.1 {
		ratio = 0.1
	}

	deviation := math.Abs(math.Log10(ratio) - math.Log10(idealKBps))
	integrity := 1 - deviation*0.4

	if integrity < 0 {
		return 0
	}
	if integrity > 1 {
		return 1
	}
	return integrity
}
