package evaluator

import (
	"fmt"
	"strings"
)

// Usage classifies how a required word appears in a submission.
type Usage string

const (
	UsageAbsent Usage = "absent"
	UsageWeak   Usage = "weak"
	UsageStrong Usage = "strong"
)

// Points awarded per required word.
const (
	WeakUsagePoints   = 5
	StrongUsagePoints = 10
)

// WordUsage is the per-word outcome of the vocabulary scorer.
type WordUsage struct {
	Word   string `json:"word"`
	Usage  Usage  `json:"usage"`
	Points int    `json:"points"`
}

// ScoreVocabulary awards points for each required word found in the text,
// doubling them when the word sits in a strong context. Duplicated words
// score once per occurrence in the list. When capped is false the category
// score is the plain sum and may exceed CategoryMax.
func ScoreVocabulary(text string, words []string, capped bool) (Category, []WordUsage) {
	folded := foldText(text)
	patterns := GeneratePatterns(words)

	usages := make([]WordUsage, 0, len(words))
	feedback := make([]string, 0, len(words))
	total := 0

	for _, pattern := range patterns {
		usage := classify(pattern, folded)
		word := strings.TrimSpace(pattern.Word)

		points := 0
		switch usage {
		case UsageStrong:
			points = StrongUsagePoints
			feedback = append(feedback, fmt.Sprintf("%q is used in a strong context.", word))
		case UsageWeak:
			points = WeakUsagePoints
			feedback = append(feedback, fmt.Sprintf("%q is used, but the context should improve.", word))
		default:
			feedback = append(feedback, fmt.Sprintf("%q was not included in your response.", word))
		}

		total += points
		usages = append(usages, WordUsage{Word: word, Usage: usage, Points: points})
	}

	return newCategory(total, capped, feedback), usages
}

func classify(pattern ContextPattern, folded string) Usage {
	word := foldText(strings.TrimSpace(pattern.Word))
	if word == "" {
		return UsageAbsent
	}
	if !strings.Contains(folded, word) {
		return UsageAbsent
	}
	if pattern.matchFolded(folded) {
		return UsageStrong
	}
	return UsageWeak
}
