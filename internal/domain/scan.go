package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanVerdict is the binary label shown to end users.
type ScanVerdict string

const (
	VerdictReal ScanVerdict = "REAL"
	VerdictFake ScanVerdict = "FAKE"
)

// fakeThreshold splits the 0-100 probability into the two verdicts.
const fakeThreshold = 50

// Scan is one persisted history record of a completed analysis.
type Scan struct {
	ID              uuid.UUID     `json:"id"`
	ContentHash     string        `json:"content_hash"`
	Filename        string        `json:"filename"`
	MediaCategory   MediaCategory `json:"media_category"`
	FakeProbability int           `json:"fake_probability"`
	// DisplayScore is the confidence in the verdict: the fake probability
	// for FAKE, its complement for REAL.
	DisplayScore int         `json:"display_score"`
	Verdict      ScanVerdict `json:"verdict"`
	Summary      string      `json:"summary,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewScan derives the history record for a finished analysis.
func NewScan(contentHash, filename string, result *ConsolidatedAnalysis) *Scan {
	scan := &Scan{
		ID:              uuid.New(),
		ContentHash:     contentHash,
		Filename:        filename,
		MediaCategory:   result.MediaCategory,
		FakeProbability: result.FakeProbability,
		Summary:         result.FileMetadata.Summary,
	}

	if result.FakeProbability >= fakeThreshold {
		scan.Verdict = VerdictFake
		scan.DisplayScore = result.FakeProbability
	} else {
		scan.Verdict = VerdictReal
		scan.DisplayScore = 100 - result.FakeProbability
	}

	return scan
}
