package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
)

type evaluateOptions struct {
	file      string
	words     []string
	asJSON    bool
	uncapped  bool
	primary   string
	secondary string
}

func newEvaluateCommand() *cobra.Command {
	opts := evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a response read from a file or stdin",
		Example: `  writingctl evaluate --file essay.txt --word innovation --word culture
  cat essay.txt | writingctl evaluate --word innovation --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "-", "response file, - for stdin")
	flags.StringSliceVarP(&opts.words, "word", "w", nil, "required vocabulary word (repeatable)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	flags.BoolVar(&opts.uncapped, "uncapped", false, "do not cap the vocabulary category at 50")
	flags.StringVar(&opts.primary, "primary-script", "", "primary script code point ranges, e.g. 0590-05FF")
	flags.StringVar(&opts.secondary, "secondary-script", "", "secondary script code point ranges, e.g. 0041-005A,0061-007A")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts evaluateOptions) error {
	logger := commandLogger(cmd)

	text, err := readSubmission(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}

	scripts, err := resolveScripts(opts.primary, opts.secondary)
	if err != nil {
		return err
	}

	words := lo.Map(opts.words, func(word string, _ int) string {
		return strings.TrimSpace(word)
	})

	engine := evaluator.New(
		evaluator.WithScripts(scripts),
		evaluator.WithVocabularyCap(!opts.uncapped),
	)
	report := engine.Evaluate(text, words)

	logger.Debug().
		Int("words", report.Stats.Words).
		Int("sentences", report.Stats.Sentences).
		Int("required_words", len(words)).
		Int("total", report.Total).
		Msg("response scored")

	out := cmd.OutOrStdout()
	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	_, err = io.WriteString(out, report.Text())
	return err
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("component", "writingctl").
		Logger()
}

func readSubmission(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func resolveScripts(primary, secondary string) (evaluator.ScriptPair, error) {
	scripts := evaluator.DefaultScripts()

	if strings.TrimSpace(primary) != "" {
		ranges, err := evaluator.ParseRanges(primary)
		if err != nil {
			return evaluator.ScriptPair{}, fmt.Errorf("primary script: %w", err)
		}
		scripts.Primary = evaluator.Script{Name: "primary", Ranges: ranges}
	}
	if strings.TrimSpace(secondary) != "" {
		ranges, err := evaluator.ParseRanges(secondary)
		if err != nil {
			return evaluator.ScriptPair{}, fmt.Errorf("secondary script: %w", err)
		}
		scripts.Secondary = evaluator.Script{Name: "secondary", Ranges: ranges}
	}

	return scripts, nil
}
