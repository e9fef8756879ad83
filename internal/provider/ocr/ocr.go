// Package ocr extracts on-screen text from video frames. The text feeds the
// reasoning layer as extra context; none of the probability math depends on
// it, so every failure here degrades to an empty transcript.
package ocr

import (
	"context"
	"crypto/sha256"
	"strings"
)

// maxFramesPerVideo caps how many frames are sent through OCR. Frames are
// deduplicated by content hash first, so a static video costs one call.
const maxFramesPerVideo = 5

// TextExtractor reads visible text from a single image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// FromFrames runs the extractor over up to maxFramesPerVideo distinct frames
// and joins the non-empty results. Extractor failures on individual frames
// are skipped rather than propagated.
func FromFrames(ctx context.Context, extractor TextExtractor, frames [][]byte) string {
	if extractor == nil || len(frames) == 0 {
		return ""
	}

	seen := make(map[[32]byte]struct{}, len(frames))
	var texts []string
	attempted := 0

	for _, frame := range frames {
		if attempted >= maxFramesPerVideo {
			break
		}
		key := sha256.Sum256(frame)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		attempted++

		text, err := extractor.ExtractText(ctx, frame)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			texts = append(texts, text)
		}
	}

	return strings.Join(texts, "\n")
}
