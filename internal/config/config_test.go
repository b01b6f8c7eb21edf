package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Analysis.CVHighThreshold)
	assert.Equal(t, 0.75, cfg.Analysis.LowPriceRatio)
	assert.Equal(t, 1.25, cfg.Analysis.HighPriceRatio)
	assert.Equal(t, 3, cfg.Analysis.MinValidQuotations)
	assert.Equal(t, 2, cfg.Analysis.CurrencyPrecision)
	assert.False(t, cfg.Analysis.SampleStdDev)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "pesquisa.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PESQUISA_ANALYSIS_MIN_VALID_QUOTATIONS", "5")
	t.Setenv("PESQUISA_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Analysis.MinValidQuotations)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	t.Setenv("PESQUISA_ANALYSIS_LOW_PRICE_RATIO", "2.0")

	_, err := Load()
	require.Error(t, err)
}

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPresets(t *testing.T) {
	path := writePresets(t, `presets:
  default:
    cv_high_threshold: 0.25
    low_price_ratio: 0.75
    high_price_ratio: 1.25
    min_valid_quotations: 3
    currency_precision: 2
  strict:
    cv_high_threshold: 0.15
    low_price_ratio: 0.85
    high_price_ratio: 1.15
    min_valid_quotations: 5
    currency_precision: 2
`)

	pf, err := LoadPresets(path)
	require.NoError(t, err)

	strict, err := pf.Preset("strict")
	require.NoError(t, err)
	assert.Equal(t, 5, strict.MinValidQuotations)
	assert.Equal(t, 0.15, strict.CVHighThreshold)

	_, err = pf.Preset("missing")
	assert.Error(t, err)
}

func TestLoadPresetsErrors(t *testing.T) {
	t.Run("invalid preset", func(t *testing.T) {
		path := writePresets(t, `presets:
  broken:
    low_price_ratio: 2.0
    high_price_ratio: 1.25
    min_valid_quotations: 3
`)
		_, err := LoadPresets(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
	t.Run("empty file", func(t *testing.T) {
		path := writePresets(t, "presets: {}\n")
		_, err := LoadPresets(path)
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
