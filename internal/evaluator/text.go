package evaluator

import (
	"strings"
	"unicode/utf8"
)

// Text holds the derived views of a submission used by the scorers.
type Text struct {
	Raw       string
	Sentences []string
	Words     []string
}

// Segment splits raw text into trimmed sentences and whitespace separated words.
func Segment(raw string) Text {
	parts := strings.FieldsFunc(raw, isTerminal)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, trimmed)
	}

	if len(sentences) == 0 {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	return Text{
		Raw:       raw,
		Sentences: sentences,
		Words:     strings.Fields(raw),
	}
}

// WordCount returns the number of whitespace separated tokens.
func (t Text) WordCount() int {
	return len(t.Words)
}

// SentenceCount returns the number of non-empty sentences.
func (t Text) SentenceCount() int {
	return len(t.Sentences)
}

// AverageSentenceLength returns words per sentence, or 0 when there are no sentences.
func (t Text) AverageSentenceLength() float64 {
	if len(t.Sentences) == 0 {
		return 0
	}
	return float64(len(t.Words)) / float64(len(t.Sentences))
}

// FirstSentence returns the opening sentence or an empty string.
func (t Text) FirstSentence() string {
	if len(t.Sentences) == 0 {
		return ""
	}
	return t.Sentences[0]
}

// LastSentence returns the closing sentence or an empty string.
func (t Text) LastSentence() string {
	if len(t.Sentences) == 0 {
		return ""
	}
	return t.Sentences[len(t.Sentences)-1]
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func runeLength(s string) int {
	return utf8.RuneCountInString(s)
}
