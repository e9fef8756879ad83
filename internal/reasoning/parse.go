package reasoning

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

var (
	scoreLineRe  = regexp.MustCompile(`(?im)^\s*score:\s*([0-9]+(?:\.[0-9]+)?)`)
	ratingLineRe = regexp.MustCompile(`(?im)^\s*credibility rating:\s*(low|medium|high)`)
)

// parseScoredVerdict extracts the 0-100 score line and returns the score
// normalized to [0, 1] with the rest of the content as reasoning.
func parseScoredVerdict(content string) (float64, string, error) {
	match := scoreLineRe.FindStringSubmatch(content)
	if match == nil {
		return 0, "", errors.New("no score line in completion")
	}

	score, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse score %q: %w", match[1], err)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	reasoning := strings.TrimSpace(scoreLineRe.ReplaceAllString(content, ""))
	return score / 100, reasoning, nil
}

// parseCredibility decodes the labeled credibility format. The rating line is
// mandatory; red flags and analysis are best effort.
func parseCredibility(content string) (*domain.Credibility, error) {
	match := ratingLineRe.FindStringSubmatch(content)
	if match == nil {
		return nil, errors.New("no credibility rating in completion")
	}

	var rating domain.CredibilityRating
	switch strings.ToLower(match[1]) {
	case "low":
		rating = domain.CredibilityLow
	case "high":
		rating = domain.CredibilityHigh
	default:
		rating = domain.CredibilityMedium
	}

	score := ratingScore(rating)
	credibility := &domain.Credibility{
		Rating:    rating,
		Score:     &score,
		RedFlags:  parseRedFlags(content),
		Reasoning: parseAnalysis(content),
	}
	return credibility, nil
}

// parseRedFlags collects the "- " bullets between the "Red Flags:" label and
// the next labeled section. A single "- none" bullet means no flags.
func parseRedFlags(content string) []string {
	lines := strings.Split(content, "\n")
	var flags []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if strings.HasPrefix(lower, "red flags:") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			flag := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			if flag != "" && !strings.EqualFold(flag, "none") {
				flags = append(flags, flag)
			}
			continue
		}
		if trimmed != "" {
			break
		}
	}

	return flags
}

func parseAnalysis(content string) string {
	idx := strings.Index(strings.ToLower(content), "analysis:")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(content[idx+len("analysis:"):])
}
