package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreGrammarCountsTransitions(t *testing.T) {
	category, checks := ScoreGrammar(Segment("Hello there. How are you? Fine! Thanks."), DefaultScripts())

	require.True(t, checks.ScriptPure)
	require.True(t, checks.SpacingClean)
	require.Equal(t, 3, checks.Transitions)
	require.Equal(t, 45, category.Score)
	require.Contains(t, category.Feedback[0], "Excellent grammar")
	require.Contains(t, category.Feedback[0], "45/50")
}

func TestScoreGrammarTransitionsCapAtTwenty(t *testing.T) {
	category, checks := ScoreGrammar(Segment("A. B. C. D. E. F."), DefaultScripts())

	require.Equal(t, 5, checks.Transitions)
	require.Equal(t, 50, category.Score)
}

func TestScoreGrammarIgnoresLowercaseStarts(t *testing.T) {
	_, checks := ScoreGrammar(Segment("one. two. three."), DefaultScripts())
	require.Zero(t, checks.Transitions)

	_, checks = ScoreGrammar(Segment("one.Two"), DefaultScripts())
	require.Zero(t, checks.Transitions, "whitespace is required after the punctuation")
}

func TestScoreGrammarAcceptsPrimaryScriptInitial(t *testing.T) {
	category, checks := ScoreGrammar(Segment("Hello. שלום"), DefaultScripts())

	require.True(t, checks.ScriptPure)
	require.Equal(t, 1, checks.Transitions)
	require.Equal(t, 35, category.Score)
}

func TestScoreGrammarMixedScriptSentence(t *testing.T) {
	category, checks := ScoreGrammar(Segment("שלום world."), DefaultScripts())

	require.False(t, checks.ScriptPure)
	require.True(t, checks.SpacingClean)
	require.Equal(t, 10, category.Score)
	require.Contains(t, category.Feedback[0], "Grammar needs work")
}

func TestScoreGrammarMissingSpaceBetweenScripts(t *testing.T) {
	category, checks := ScoreGrammar(Segment("שלוםworld"), DefaultScripts())

	require.False(t, checks.ScriptPure)
	require.False(t, checks.SpacingClean)
	require.Zero(t, category.Score)
}

func TestScoreGrammarCustomScriptPair(t *testing.T) {
	cyrillic := Script{Name: "cyrillic", Ranges: []CodeRange{{Lo: 0x0400, Hi: 0x04FF}}}
	pair := ScriptPair{Primary: cyrillic, Secondary: Latin}

	_, checks := ScoreGrammar(Segment("Привет. мир"), pair)
	require.Zero(t, checks.Transitions, "lowercase cyrillic does not open a sentence")

	_, checks = ScoreGrammar(Segment("Привет. Мир"), pair)
	require.Equal(t, 1, checks.Transitions)

	_, checks = ScoreGrammar(Segment("Приветworld"), pair)
	require.False(t, checks.SpacingClean)
	require.False(t, checks.ScriptPure)
}

func TestScoreGrammarEmptySubmission(t *testing.T) {
	category, checks := ScoreGrammar(Segment(""), DefaultScripts())

	require.True(t, checks.ScriptPure)
	require.False(t, checks.SpacingClean)
	require.Equal(t, 20, category.Score)
}
