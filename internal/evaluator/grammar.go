package evaluator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GrammarChecks records the outcome of each grammar heuristic.
type GrammarChecks struct {
	ScriptPure   bool `json:"script_pure"`
	Transitions  int  `json:"transitions"`
	SpacingClean bool `json:"spacing_clean"`
}

// ScoreGrammar applies the script purity, sentence transition and spacing heuristics.
func ScoreGrammar(t Text, scripts ScriptPair) (Category, GrammarChecks) {
	checks := GrammarChecks{
		ScriptPure:   scriptPure(t.Sentences, scripts),
		Transitions:  countTransitions(t.Raw, scripts),
		SpacingClean: spacingClean(t.Words, scripts),
	}

	score := 0
	if checks.ScriptPure {
		score += 20
	}
	score += min(20, checks.Transitions*5)
	if checks.SpacingClean {
		score += 10
	}

	return newCategory(score, true, []string{grammarMessage(score)}), checks
}

func scriptPure(sentences []string, scripts ScriptPair) bool {
	for _, sentence := range sentences {
		hasPrimary := strings.IndexFunc(sentence, scripts.Primary.Contains) >= 0
		hasSecondary := strings.IndexFunc(sentence, scripts.Secondary.Contains) >= 0
		if hasPrimary && hasSecondary {
			return false
		}
	}
	return true
}

// countTransitions counts non-overlapping runs of terminal punctuation, whitespace
// and a sentence-initial letter of either script.
func countTransitions(raw string, scripts ScriptPair) int {
	count := 0
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		if !isTerminal(r) {
			continue
		}

		j := i
		spaces := 0
		for j < len(raw) {
			next, width := utf8.DecodeRuneInString(raw[j:])
			if !unicode.IsSpace(next) {
				break
			}
			spaces++
			j += width
		}
		if spaces == 0 || j >= len(raw) {
			continue
		}

		initial, width := utf8.DecodeRuneInString(raw[j:])
		if scripts.Primary.IsInitial(initial) || scripts.Secondary.IsInitial(initial) {
			count++
			i = j + width
		}
	}
	return count
}

// spacingClean needs at least one word; an empty submission earns no spacing credit.
func spacingClean(words []string, scripts ScriptPair) bool {
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		prev := rune(-1)
		for _, r := range word {
			if prev >= 0 && mixedPair(prev, r, scripts) {
				return false
			}
			prev = r
		}
	}
	return true
}

func mixedPair(a, b rune, scripts ScriptPair) bool {
	return (scripts.Primary.Contains(a) && scripts.Secondary.Contains(b)) ||
		(scripts.Secondary.Contains(a) && scripts.Primary.Contains(b))
}

func grammarMessage(score int) string {
	switch {
	case score >= 40:
		return fmt.Sprintf("Excellent grammar: sentences are well punctuated and consistently written (%d/%d).", score, CategoryMax)
	case score >= 30:
		return fmt.Sprintf("Good grammar: check the punctuation between sentences and the spacing around foreign words (%d/%d).", score, CategoryMax)
	default:
		return fmt.Sprintf("Grammar needs work: keep each sentence in one script and separate words with spaces (%d/%d).", score, CategoryMax)
	}
}
