package reasoning

import (
	"fmt"
	"strings"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

const voiceCloneSystemPrompt = `You are an audio forensics analyst. ` +
	`Given the technical characteristics of a speech recording, estimate how ` +
	`likely it is that the voice was synthesized or cloned. Respond with ` +
	`exactly two parts: a line "Score: <number 0-100>" and a short paragraph ` +
	`explaining the assessment.`

func summarySystemPrompt(language string) string {
	prompt := `You are a media authenticity analyst writing for a non-technical ` +
		`audience. Summarize the analysis verdict in two or three sentences. ` +
		`Do not hedge beyond what the scores support and do not mention tool names.`
	if language != "" && language != "en" {
		prompt += fmt.Sprintf(" Respond in the language with ISO code %q.", language)
	}
	return prompt
}

func summaryUserPrompt(input SummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Media type: %s\n", input.MediaCategory)
	fmt.Fprintf(&b, "Overall fake probability: %d%%\n", input.FakeProbability)

	for capability, result := range input.Scores {
		if result.Score != nil {
			fmt.Fprintf(&b, "Signal %s: %.2f\n", capability, *result.Score)
		}
	}

	if input.Signals.MissingCameraMetadata {
		b.WriteString("Camera metadata: absent\n")
	}
	if input.Signals.SuspiciousResolution != "" {
		fmt.Fprintf(&b, "Resolution %s matches common AI generator output sizes\n", input.Signals.SuspiciousResolution)
	}
	if len(input.Signals.MatchedGeneratorTags) > 0 {
		fmt.Fprintf(&b, "Generator tags found in metadata: %s\n", strings.Join(input.Signals.MatchedGeneratorTags, ", "))
	}
	if input.OnScreenText != "" {
		fmt.Fprintf(&b, "On-screen text:\n%s\n", input.OnScreenText)
	}

	b.WriteString("\nWrite the executive summary.")
	return b.String()
}

func voiceCloneUserPrompt(input VoiceCloneInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bitrate: %d bps\n", input.Bitrate)
	fmt.Fprintf(&b, "Sample rate: %d Hz\n", input.SampleRate)
	fmt.Fprintf(&b, "Duration: %.1f s\n", input.Duration)
	if input.SilenceGaps != "" {
		fmt.Fprintf(&b, "Silence gaps: %s\n", input.SilenceGaps)
	}
	if input.LipSync != nil {
		fmt.Fprintf(&b, "Lip-sync integrity: %.0f%%\n", *input.LipSync*100)
	}
	b.WriteString("\nEstimate the voice-clone likelihood.")
	return b.String()
}

func credibilitySystemPrompt(language string) string {
	prompt := `You are a fact-checking assistant. Assess the credibility of the ` +
		`claims made in the transcript. Respond in exactly this format:

Credibility Rating: <Low|Medium|High>
Red Flags:
- <flag>
Analysis: <short paragraph>

Use "Red Flags:" followed by "- none" when there are no red flags.`
	if language != "" && language != "en" {
		prompt += fmt.Sprintf(" Write the analysis in the language with ISO code %q, but keep the labels in English.", language)
	}
	return prompt
}

func credibilityUserPrompt(transcript string, corroborating float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Corroborating manipulation signal: %.2f (0 = clean, 1 = manipulated)\n", corroborating)
	b.WriteString("Transcript:\n")
	b.WriteString(truncate(transcript, 6000))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// ratingScore maps the coarse rating onto the midpoint score the API reports.
func ratingScore(rating domain.CredibilityRating) int {
	switch rating {
	case domain.CredibilityLow:
		return 25
	case domain.CredibilityHigh:
		return 75
	default:
		return 50
	}
}
