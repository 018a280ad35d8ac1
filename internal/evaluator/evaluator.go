package evaluator

// MaxTotal is the highest reachable total score.
const MaxTotal = 3 * CategoryMax

// Option customises an Evaluator.
type Option func(*config)

type config struct {
	scripts       ScriptPair
	capVocabulary bool
}

// WithScripts replaces the script pair used by the grammar heuristics.
func WithScripts(pair ScriptPair) Option {
	return func(c *config) { c.scripts = pair }
}

// WithVocabularyCap controls whether the vocabulary category is clamped to
// CategoryMax before it is added to the total. It defaults to true.
func WithVocabularyCap(enabled bool) Option {
	return func(c *config) { c.capVocabulary = enabled }
}

// Evaluator scores submissions with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	cfg config
}

// New constructs an Evaluator with the Hebrew/Latin script pair and a capped
// vocabulary category unless overridden.
func New(opts ...Option) *Evaluator {
	cfg := config{
		scripts:       DefaultScripts(),
		capVocabulary: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Evaluator{cfg: cfg}
}

// Scripts returns the configured script pair.
func (e *Evaluator) Scripts() ScriptPair {
	return e.cfg.scripts
}

// CapsVocabulary reports whether the vocabulary category is clamped.
func (e *Evaluator) CapsVocabulary() bool {
	return e.cfg.capVocabulary
}

// Evaluate scores submission against the required words.
func (e *Evaluator) Evaluate(submission string, requiredWords []string) Report {
	text := Segment(submission)

	clarity := ScoreClarity(text)
	grammar, checks := ScoreGrammar(text, e.cfg.scripts)
	vocabulary, usages := ScoreVocabulary(submission, requiredWords, e.cfg.capVocabulary)

	total := clamp(clarity.Score+grammar.Score+vocabulary.Score, 0, MaxTotal)
	tier := TierFor(total)

	return Report{
		Total:      total,
		MaxTotal:   MaxTotal,
		Clarity:    clarity,
		Grammar:    grammar,
		Vocabulary: vocabulary,
		Tier:       tier,
		Message:    tier.Message(),
		Stats: Stats{
			Words:                 text.WordCount(),
			Sentences:             text.SentenceCount(),
			AverageSentenceLength: text.AverageSentenceLength(),
		},
		Checks: checks,
		Words:  usages,
	}
}

// Evaluate scores submission with the default Evaluator configuration.
func Evaluate(submission string, requiredWords []string) Report {
	return New().Evaluate(submission, requiredWords)
}
