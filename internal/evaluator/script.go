package evaluator

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// CodeRange is an inclusive range of Unicode code points.
type CodeRange struct {
	Lo rune `json:"lo"`
	Hi rune `json:"hi"`
}

// Script describes a writing system as a set of code point ranges.
type Script struct {
	Name   string      `json:"name"`
	Ranges []CodeRange `json:"ranges"`
}

// ScriptPair is the pair of writing systems the grammar heuristics compare.
// Primary is the learner's main script, Secondary the one mixed into it.
type ScriptPair struct {
	Primary   Script `json:"primary"`
	Secondary Script `json:"secondary"`
}

// Hebrew covers the Hebrew Unicode block.
var Hebrew = Script{
	Name:   "hebrew",
	Ranges: []CodeRange{{Lo: 0x0590, Hi: 0x05FF}},
}

// Latin covers the ASCII letters.
var Latin = Script{
	Name:   "latin",
	Ranges: []CodeRange{{Lo: 'a', Hi: 'z'}, {Lo: 'A', Hi: 'Z'}},
}

// DefaultScripts returns the Hebrew/Latin pair.
func DefaultScripts() ScriptPair {
	return ScriptPair{Primary: Hebrew, Secondary: Latin}
}

// Contains reports whether r falls into any of the script ranges.
func (s Script) Contains(r rune) bool {
	for _, cr := range s.Ranges {
		if r >= cr.Lo && r <= cr.Hi {
			return true
		}
	}
	return false
}

// IsInitial reports whether r may open a sentence in this script.
// Caseless scripts accept every code point in range; cased ones only non-lowercase letters.
func (s Script) IsInitial(r rune) bool {
	return s.Contains(r) && !unicode.IsLower(r)
}

// ParseRanges parses a comma separated list of hexadecimal ranges such as
// "0590-05FF,FB1D-FB4F". A single code point may be given without a dash.
func ParseRanges(list string) ([]CodeRange, error) {
	var ranges []CodeRange
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		loText, hiText, found := strings.Cut(part, "-")
		if !found {
			hiText = loText
		}

		lo, err := parseCodePoint(loText)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", part, err)
		}
		hi, err := parseCodePoint(hiText)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", part, err)
		}
		if hi < lo {
			return nil, fmt.Errorf("invalid range %q: upper bound below lower bound", part)
		}

		ranges = append(ranges, CodeRange{Lo: lo, Hi: hi})
	}

	if len(ranges) == 0 {
		return nil, fmt.Errorf("no code point ranges in %q", list)
	}

	return ranges, nil
}

func parseCodePoint(text string) (rune, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "U+"), "u+")
	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, err
	}
	if value > unicode.MaxRune {
		return 0, fmt.Errorf("code point %X out of range", value)
	}
	return rune(value), nil
}
