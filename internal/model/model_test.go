package model

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() AnalysisConfig {
	return AnalysisConfig{
		CVHighThreshold:    0.25,
		LowPriceRatio:      0.75,
		HighPriceRatio:     1.25,
		MinValidQuotations: 3,
		CurrencyPrecision:  2,
	}
}

func TestAnalysisConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"negative cv threshold", func(c *AnalysisConfig) { c.CVHighThreshold = -0.1 }},
		{"zero low ratio", func(c *AnalysisConfig) { c.LowPriceRatio = 0 }},
		{"negative high ratio", func(c *AnalysisConfig) { c.HighPriceRatio = -1 }},
		{"inverted band", func(c *AnalysisConfig) { c.LowPriceRatio, c.HighPriceRatio = 1.5, 0.5 }},
		{"floor below one", func(c *AnalysisConfig) { c.MinValidQuotations = 0 }},
		{"precision out of range", func(c *AnalysisConfig) { c.CurrencyPrecision = 9 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrConfiguration))
		})
	}
}

func TestSourceTypePublic(t *testing.T) {
	assert.False(t, SourceSupplier.Public())
	assert.True(t, SourceContract.Public())
	assert.True(t, SourcePriceBank.Public())
	assert.True(t, SourcePriceRegistry.Public())
}

func TestPublicSourceShare(t *testing.T) {
	it := Item{Quotations: []Quotation{
		{SourceType: SourceSupplier, Price: 10},
		{SourceType: SourceContract, Price: 11},
		{SourceType: SourcePriceBank, Price: 12},
		{SourceType: SourceSupplier, Price: 13},
	}}
	assert.InDelta(t, 0.5, it.PublicSourceShare(), 0.0001)

	var empty Item
	assert.Zero(t, empty.PublicSourceShare())
}

func TestFindItem(t *testing.T) {
	s := AnalysisSession{Items: []Item{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, s.FindItem("b"))
	assert.Equal(t, -1, s.FindItem("missing"))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, TypeStandardResearch.Valid())
	assert.True(t, TypeContractExtension.Valid())
	assert.True(t, TypeComparativeMap.Valid())
	assert.False(t, AnalysisType("bogus").Valid())

	assert.True(t, ModeItemByItem.Valid())
	assert.True(t, ModeBatchBySource.Valid())
	assert.False(t, LaunchMode("bogus").Valid())
}
