// Package extract pulls sampled frames and audio tracks out of video
// buffers by shelling out to ffmpeg/ffprobe. All working storage lives in a
// per-call temp directory that is removed on every exit path.
package extract

import "context"

// Options controls frame sampling.
type Options struct {
	IntervalSeconds int
	MaxFrames       int
}

// DefaultOptions mirrors the detection provider's own sampling cadence.
func DefaultOptions() Options {
	return Options{IntervalSeconds: 2, MaxFrames: 15}
}

// Tracks is the outcome of a dual-track extraction. A silent video yields
// Audio == nil without being an error.
type Tracks struct {
	Frames [][]byte
	Audio  []byte
}

// AudioInfo describes the audio stream of a media file.
type AudioInfo struct {
	HasAudio    bool
	Bitrate     int
	SampleRate  int
	Duration    float64
	SilenceGaps string
}

// TrackExtractor decodes a video buffer into sampled frames plus an
// optional audio track.
type TrackExtractor interface {
	Extract(ctx context.Context, data []byte, formatHint string, opts Options) (*Tracks, error)
	ProbeAudio(ctx context.Context, data []byte, formatHint string) (*AudioInfo, error)
}
