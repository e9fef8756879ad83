package service

import (
	"math"
	"math/rand/v2"
)

// baselineScore is the fixed prior the size/extension guess is blended with.
const baselineScore = 20.0

// heuristicScore is the bounded last-resort estimate for media no detector
// can handle. It is nondeterministic on purpose (the jitter keeps repeated
// uploads from looking falsely authoritative) and is excluded from any
// idempotence guarantee.
func heuristicScore(size int64, ext string) int {
	score := 15.0

	switch {
	case size < 100*1024:
		score += 20
	case size < 1024*1024:
		score += 10
	case size > 20*1024*1024:
		score -= 5
	}

	switch ext {
	case "png", "webp":
		score += 10
	}

	score += rand.Float64() * 12
	if score > 95 {
		score = 95
	}

	blended := (score + baselineScore) / 2
	return clampPercent(int(math.Round(blended)))
}
