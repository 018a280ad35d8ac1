package evaluator

// CategoryMax is the nominal ceiling of each scoring category.
const CategoryMax = 50

// Category is the score and feedback for one evaluation dimension.
type Category struct {
	Score    int      `json:"score"`
	MaxScore int      `json:"max_score"`
	RawScore int      `json:"raw_score"`
	Feedback []string `json:"feedback"`
}

func newCategory(raw int, capped bool, feedback []string) Category {
	score := raw
	if capped {
		score = clamp(raw, 0, CategoryMax)
	}
	if feedback == nil {
		feedback = []string{}
	}
	return Category{
		Score:    score,
		MaxScore: CategoryMax,
		RawScore: raw,
		Feedback: feedback,
	}
}

func clamp(value, lo, hi int) int {
	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}
