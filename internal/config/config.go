package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	SQLitePath       string
	RedisURL         string
	NATSURL          string
	EventsSubject    string
	JWTSecret        string
	ReportCacheTTL   time.Duration
	CapVocabulary    bool
	StripMarkup      bool
	MaxRequiredWords int
	Scripts          evaluator.ScriptPair
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// EvaluatorOptions translates the evaluation settings into engine options.
func (c Config) EvaluatorOptions() []evaluator.Option {
	scripts := c.Scripts
	if len(scripts.Primary.Ranges) == 0 || len(scripts.Secondary.Ranges) == 0 {
		scripts = evaluator.DefaultScripts()
	}

	return []evaluator.Option{
		evaluator.WithScripts(scripts),
		evaluator.WithVocabularyCap(c.CapVocabulary),
	}
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WRITING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA Writing API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.sqlite_path", "writing.db")
	v.SetDefault("events.subject", "gema.writing.evaluations")
	v.SetDefault("report.cache_ttl", "10m")
	v.SetDefault("evaluation.cap_vocabulary", true)
	v.SetDefault("evaluation.strip_markup", true)
	v.SetDefault("evaluation.max_required_words", 50)
	v.SetDefault("evaluation.primary_script", "0590-05FF")
	v.SetDefault("evaluation.secondary_script", "0061-007A,0041-005A")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")

	ttl, err := parseDuration(v.GetString("report.cache_ttl"), 10*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid report cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	primary, err := evaluator.ParseRanges(v.GetString("evaluation.primary_script"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid primary script: %w", err)
	}

	secondary, err := evaluator.ParseRanges(v.GetString("evaluation.secondary_script"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid secondary script: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		SQLitePath:       v.GetString("database.sqlite_path"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		EventsSubject:    v.GetString("events.subject"),
		JWTSecret:        v.GetString("jwt.secret"),
		ReportCacheTTL:   ttl,
		CapVocabulary:    v.GetBool("evaluation.cap_vocabulary"),
		StripMarkup:      v.GetBool("evaluation.strip_markup"),
		MaxRequiredWords: v.GetInt("evaluation.max_required_words"),
		Scripts: evaluator.ScriptPair{
			Primary:   evaluator.Script{Name: "primary", Ranges: primary},
			Secondary: evaluator.Script{Name: "secondary", Ranges: secondary},
		},
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxRequiredWords <= 0 {
		cfg.MaxRequiredWords = 50
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
