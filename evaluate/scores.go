package evaluate

import (
	"regexp"
	"strconv"

	"github.com/ShkrSltn/dbot-sub000/profile"
)

// Scores holds the four judge criteria. Zero means the field could not
// be parsed, which fails the threshold gate.
type Scores struct {
	Clarity                    int `json:"clarity"`
	RelevanceForContext        int `json:"relevance_for_context"`
	RetentionOfOriginalMeaning int `json:"retention_of_original_meaning"`
	Difficulty                 int `json:"difficulty"`
}

// Sum is the quality ranking used for best-of-N selection. Difficulty
// is a gating check, not a quality axis, so it is excluded.
func (s Scores) Sum() int {
	return s.Clarity + s.RelevanceForContext + s.RetentionOfOriginalMeaning
}

var (
	clarityPattern    = regexp.MustCompile(`(?i)clarity\s*:\s*(\d)`)
	relevancePattern  = regexp.MustCompile(`(?i)relevance for context\s*:\s*(\d)`)
	retentionPattern  = regexp.MustCompile(`(?i)retention of original meaning\s*:\s*(\d)`)
	meaningPattern    = regexp.MustCompile(`(?i)original meaning\s*:\s*(\d)`)
	difficultyPattern = regexp.MustCompile(`(?i)difficulty\s*:\s*(\d)`)
)

// ExtractScores parses the judge's reply. Each field takes the first
// single-digit match of its label; unmatched fields default to 0.
func ExtractScores(evaluation string) Scores {
	scores := Scores{
		Clarity:             firstDigit(clarityPattern, evaluation),
		RelevanceForContext: firstDigit(relevancePattern, evaluation),
		Difficulty:          firstDigit(difficultyPattern, evaluation),
	}
	scores.RetentionOfOriginalMeaning = firstDigit(retentionPattern, evaluation)
	if scores.RetentionOfOriginalMeaning == 0 {
		scores.RetentionOfOriginalMeaning = firstDigit(meaningPattern, evaluation)
	}
	return scores
}

func firstDigit(pattern *regexp.Regexp, text string) int {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// DifficultyBand returns the inclusive difficulty bounds accepted for
// the given proficiency. Basic and Expert carry no effective
// constraint.
func DifficultyBand(p profile.Proficiency) (lo, hi int) {
	switch p {
	case profile.ProficiencyBeginner:
		return 1, 2
	case profile.ProficiencyIntermediate:
		return 2, 3
	case profile.ProficiencyAdvanced:
		return 3, 5
	default:
		return 0, 5
	}
}

// MeetsThreshold reports whether the scores pass the quality gate:
// clarity, relevance, and retention at least 3, and difficulty within
// the proficiency's band.
func (s Scores) MeetsThreshold(p profile.Proficiency) bool {
	if s.Clarity < 3 || s.RelevanceForContext < 3 || s.RetentionOfOriginalMeaning < 3 {
		return false
	}
	lo, hi := DifficultyBand(p)
	return s.Difficulty >= lo && s.Difficulty <= hi
}
