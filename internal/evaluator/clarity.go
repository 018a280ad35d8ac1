package evaluator

import "fmt"

const structuralSentenceChars = 20

// ScoreClarity rates length, sentence rhythm and the opening and closing sentences.
func ScoreClarity(t Text) Category {
	score := lengthPoints(t.WordCount())
	score += rhythmPoints(t.AverageSentenceLength())

	if runeLength(t.FirstSentence()) > structuralSentenceChars {
		score += 5
	}
	if runeLength(t.LastSentence()) > structuralSentenceChars {
		score += 5
	}

	return newCategory(score, true, []string{clarityMessage(score)})
}

func lengthPoints(words int) int {
	switch {
	case words >= 50:
		return 20
	case words >= 30:
		return 15
	case words >= 20:
		return 10
	default:
		return 5
	}
}

// rhythmPoints favours 8 to 15 words per sentence. Averages above 15 earn nothing.
func rhythmPoints(avg float64) int {
	switch {
	case avg >= 8 && avg <= 15:
		return 20
	case avg >= 5 && avg < 8:
		return 10
	default:
		return 0
	}
}

func clarityMessage(score int) string {
	switch {
	case score >= 40:
		return fmt.Sprintf("Excellent clarity: your ideas are well organized and easy to follow (%d/%d).", score, CategoryMax)
	case score >= 30:
		return fmt.Sprintf("Good clarity: the structure works, though some sentences could be tightened (%d/%d).", score, CategoryMax)
	default:
		return fmt.Sprintf("Clarity needs work: develop your ideas further and aim for 8 to 15 words per sentence (%d/%d).", score, CategoryMax)
	}
}
