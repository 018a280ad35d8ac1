package evaluator

import (
	"fmt"
	"strings"
)

// Tier is the qualitative band of a total score.
type Tier string

const (
	TierOutstanding    Tier = "outstanding"
	TierWellDone       Tier = "well_done"
	TierGood           Tier = "good"
	TierKeepPracticing Tier = "keep_practicing"
)

// TierFor classifies a total score.
func TierFor(total int) Tier {
	switch {
	case total >= 120:
		return TierOutstanding
	case total >= 90:
		return TierWellDone
	case total >= 60:
		return TierGood
	default:
		return TierKeepPracticing
	}
}

// Message returns the learner-facing text of the tier.
func (t Tier) Message() string {
	switch t {
	case TierOutstanding:
		return "Outstanding work! This response is ready to share."
	case TierWellDone:
		return "Well done! Only small refinements remain."
	case TierGood:
		return "Good effort, but there is still room to improve."
	default:
		return "Keep practicing. Every draft makes the next one better."
	}
}

// Stats summarises the segmented submission.
type Stats struct {
	Words                 int     `json:"words"`
	Sentences             int     `json:"sentences"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
}

// Report is the complete result of one evaluation. It is built once and not
// mutated afterwards.
type Report struct {
	Total      int           `json:"total"`
	MaxTotal   int           `json:"max_total"`
	Clarity    Category      `json:"clarity"`
	Grammar    Category      `json:"grammar"`
	Vocabulary Category      `json:"vocabulary"`
	Tier       Tier          `json:"tier"`
	Message    string        `json:"message"`
	Stats      Stats         `json:"stats"`
	Checks     GrammarChecks `json:"checks"`
	Words      []WordUsage   `json:"words"`
}

// Text renders the report as plain display text.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total score: %d/%d\n", r.Total, r.MaxTotal)
	writeCategory(&b, "Clarity", r.Clarity)
	writeCategory(&b, "Grammar", r.Grammar)
	writeCategory(&b, "Vocabulary", r.Vocabulary)
	fmt.Fprintf(&b, "\n%s\n", r.Message)
	return b.String()
}

func writeCategory(b *strings.Builder, name string, c Category) {
	fmt.Fprintf(b, "\n%s: %d/%d\n", name, c.Score, c.MaxScore)
	for _, line := range c.Feedback {
		fmt.Fprintf(b, "  - %s\n", line)
	}
}
