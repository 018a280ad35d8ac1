package evaluator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	linkingVerbs = `is|are|was|were|has|have|had`
	usageMarkers = `use|using|used`
)

// ContextPattern holds the two rules that decide whether a required word is
// used in a plausible surrounding phrase.
type ContextPattern struct {
	Word    string
	Linking *regexp.Regexp
	Usage   *regexp.Regexp
}

// NewContextPattern builds the linking and usage rules for word.
// Rules are compiled from the case-folded word and match folded text, so
// they agree with the presence test. The linking verb may follow on a later
// line. Invalid UTF-8 in word is replaced before compiling.
func NewContextPattern(word string) ContextPattern {
	quoted := regexp.QuoteMeta(foldText(strings.TrimSpace(word)))
	return ContextPattern{
		Word:    word,
		Linking: regexp.MustCompile(`(?is)` + quoted + `.*?\b(?:` + linkingVerbs + `)\b`),
		Usage:   regexp.MustCompile(`(?i)\b(?:` + usageMarkers + `)\s+(?:(?:a|an|the)\s+)?` + quoted),
	}
}

// GeneratePatterns derives one ContextPattern per required word, in input order.
func GeneratePatterns(words []string) []ContextPattern {
	patterns := make([]ContextPattern, 0, len(words))
	for _, word := range words {
		patterns = append(patterns, NewContextPattern(word))
	}
	return patterns
}

// Match reports whether either rule matches text.
func (p ContextPattern) Match(text string) bool {
	return p.matchFolded(foldText(text))
}

func (p ContextPattern) matchFolded(folded string) bool {
	return p.Linking.MatchString(folded) || p.Usage.MatchString(folded)
}

// foldText replaces invalid UTF-8 and applies full Unicode case folding.
func foldText(s string) string {
	return cases.Fold().String(strings.ToValidUTF8(s, string(utf8.RuneError)))
}
