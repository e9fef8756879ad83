package domain

import (
	"encoding/json"
	"time"
)

// MediaCategory is the coarse media class the pipeline branches on.
type MediaCategory string

const (
	MediaImage MediaCategory = "image"
	MediaAudio MediaCategory = "audio"
	MediaVideo MediaCategory = "video"
)

// Capability identifies one detection or analysis function a caller can request.
type Capability string

const (
	CapabilityGenAI      Capability = "genai"
	CapabilityDeepfake   Capability = "deepfake"
	CapabilityQuality    Capability = "quality"
	CapabilityType       Capability = "type"
	CapabilityVoiceClone Capability = "voice_clone"
	CapabilityLipSync    Capability = "lip_sync"
)

var knownCapabilities = map[Capability]bool{
	CapabilityGenAI:      true,
	CapabilityDeepfake:   true,
	CapabilityQuality:    true,
	CapabilityType:       true,
	CapabilityVoiceClone: true,
	CapabilityLipSync:    true,
}

// IsValid reports whether c is part of the closed capability enumeration.
func (c Capability) IsValid() bool {
	return knownCapabilities[c]
}

// ParseCapabilities converts raw identifiers into capabilities, dropping
// unknown entries and duplicates while preserving order. An empty result
// means the caller gets the default set.
func ParseCapabilities(raw []string) []Capability {
	seen := make(map[Capability]bool, len(raw))
	out := make([]Capability, 0, len(raw))
	for _, r := range raw {
		c := Capability(r)
		if !c.IsValid() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// CapabilityResult is the tagged per-capability payload. Exactly one branch
// is populated, selected by the capability the result was stored under:
// genai/deepfake/quality carry Score, type carries Attributes, voice_clone
// carries Reasoning+Source, lip_sync carries Score.
type CapabilityResult struct {
	Score      *float64          `json:"score,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Reasoning  string            `json:"reasoning,omitempty"`
	Source     string            `json:"source,omitempty"`
}

// ScoreResult builds a score-carrying result (genai, deepfake, quality, lip_sync).
func ScoreResult(v float64) CapabilityResult {
	return CapabilityResult{Score: &v}
}

// VideoEngine selects how video detection is performed.
type VideoEngine string

const (
	// VideoEngineFrameBased samples frames and scores them one by one.
	VideoEngineFrameBased VideoEngine = "frame_based"
	// VideoEngineNative sends the whole video to the detection provider.
	VideoEngineNative VideoEngine = "native_video"
)

// AnalysisOptions carries the per-request tuning knobs.
type AnalysisOptions struct {
	EliteTier   bool
	VideoEngine VideoEngine
	// VideoCapabilities restricts which capabilities the video path may request.
	VideoCapabilities []Capability
	Language          string
	// Credibility opts in to the text-credibility enrichment (elite only).
	Credibility bool
}

// AnalysisRequest describes one uploaded file to analyze. It is immutable
// for the duration of the analysis.
type AnalysisRequest struct {
	Data         []byte
	DeclaredMIME string
	Filename     string
	Capabilities []Capability
	Options      AnalysisOptions
}

// LocalSignals are heuristics derived from embedded capture metadata,
// computed once per image and independent of any external call.
type LocalSignals struct {
	MissingCameraMetadata bool     `json:"missing_camera_metadata"`
	SuspiciousResolution  string   `json:"suspicious_resolution,omitempty"`
	MatchedGeneratorTags  []string `json:"matched_generator_tags,omitempty"`
}

// FileMetadata summarizes the analyzed file for the caller.
type FileMetadata struct {
	Type           string     `json:"type"`
	Extension      string     `json:"extension"`
	Size           int64      `json:"size"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	Resolution     string     `json:"resolution,omitempty"`
	FramesAnalyzed int        `json:"frames_analyzed,omitempty"`
	AnalysisMethod string     `json:"analysis_method,omitempty"`
	Summary        string     `json:"summary,omitempty"`
}

// CredibilityRating classifies how trustworthy extracted on-media text looks.
type CredibilityRating string

const (
	CredibilityLow    CredibilityRating = "Low"
	CredibilityMedium CredibilityRating = "Medium"
	CredibilityHigh   CredibilityRating = "High"
)

// Credibility is the text-credibility assessment. When the upstream
// reasoning call fails the assessment degrades to a sentinel with Error set
// and a machine-readable ReasonCode; it is never surfaced as a Go error.
type Credibility struct {
	Rating     CredibilityRating `json:"rating,omitempty"`
	Score      *int              `json:"score,omitempty"`
	Reasoning  string            `json:"reasoning"`
	RedFlags   []string          `json:"red_flags,omitempty"`
	Error      bool              `json:"error,omitempty"`
	ReasonCode string            `json:"reason_code,omitempty"`
}

// ConsolidatedAnalysis is the final result of one pipeline run.
type ConsolidatedAnalysis struct {
	ContentHash     string                          `json:"content_hash"`
	Cached          bool                            `json:"cached"`
	FakeProbability int                             `json:"fake_probability"`
	AIProbability   *int                            `json:"ai_probability,omitempty"`
	MediaCategory   MediaCategory                   `json:"media_category"`
	FileMetadata    FileMetadata                    `json:"file_metadata"`
	LocalSignals    LocalSignals                    `json:"local_signals"`
	Requested       []Capability                    `json:"requested_capabilities"`
	Scores          map[Capability]CapabilityResult `json:"per_capability_scores"`
	RawDetection    json.RawMessage                 `json:"raw_detection_response,omitempty"`
	Fetched         []Capability                    `json:"capabilities_fetched_this_call,omitempty"`
	Credibility     *Credibility                    `json:"credibility_assessment,omitempty"`
}
