package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-writing-api/internal/evaluator"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("WRITING_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WRITING_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	require.True(t, cfg.CapVocabulary)
	require.True(t, cfg.StripMarkup)
	require.Equal(t, 50, cfg.MaxRequiredWords)
	require.Equal(t, []evaluator.CodeRange{{Lo: 0x0590, Hi: 0x05FF}}, cfg.Scripts.Primary.Ranges)
	require.True(t, cfg.Scripts.Secondary.Contains('q'))
	require.True(t, cfg.Scripts.Secondary.Contains('Q'))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WRITING_JWT_SECRET", "secret")
	t.Setenv("WRITING_APP_PORT", ":9090")
	t.Setenv("WRITING_EVALUATION_CAP_VOCABULARY", "false")
	t.Setenv("WRITING_EVALUATION_PRIMARY_SCRIPT", "0400-04FF")
	t.Setenv("WRITING_REPORT_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.False(t, cfg.CapVocabulary)
	require.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	require.True(t, cfg.Scripts.Primary.Contains('Ж'))

	engine := evaluator.New(cfg.EvaluatorOptions()...)
	require.False(t, engine.CapsVocabulary())
}

func TestLoadRejectsInvalidScript(t *testing.T) {
	t.Setenv("WRITING_JWT_SECRET", "secret")
	t.Setenv("WRITING_EVALUATION_SECONDARY_SCRIPT", "not-hex")

	_, err := Load()
	require.Error(t, err)
}
