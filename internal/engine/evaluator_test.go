package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

func testConfig() model.AnalysisConfig {
	return model.AnalysisConfig{
		CVHighThreshold:    0.25,
		LowPriceRatio:      0.5,
		HighPriceRatio:     1.5,
		MinValidQuotations: 3,
		CurrencyPrecision:  2,
	}
}

func quotes(prices ...float64) []model.Quotation {
	qs := make([]model.Quotation, len(prices))
	for i, p := range prices {
		qs[i] = model.Quotation{
			ID:         string(rune('a' + i)),
			Source:     "Fonte",
			SourceType: model.SourceSupplier,
			Price:      p,
		}
	}
	return qs
}

func TestEvaluateBand_ExcessiveOutlierRemoved(t *testing.T) {
	out := EvaluateBand(quotes(10, 12, 11, 1000), testConfig())

	require.False(t, out.Insufficient)
	assert.True(t, out.HadExcessive)
	assert.False(t, out.HadInexequible)

	require.Len(t, out.Valid, 3)
	require.Len(t, out.Excluded, 1)
	assert.Equal(t, 1000.0, out.Excluded[0].Quotation.Price)
	assert.Equal(t, model.ReasonExcessive, out.Excluded[0].Reason)

	// Final pass over [10, 12, 11]: low dispersion, mean anchors.
	assert.Equal(t, model.MethodMean, out.Method)
	assert.InDelta(t, 11.0, out.Reference, 0.0001)
	assert.Equal(t, 2, out.Iterations)
}

func TestEvaluateBand_StableSetIsFixedPoint(t *testing.T) {
	out := EvaluateBand(quotes(10, 11, 12), testConfig())

	assert.False(t, out.HadExcessive)
	assert.False(t, out.HadInexequible)
	assert.Len(t, out.Valid, 3)
	assert.Empty(t, out.Excluded)
	assert.Equal(t, 1, out.Iterations)
	assert.Equal(t, model.MethodMean, out.Method)
}

func TestEvaluateBand_HighDispersionAnchorsOnMedian(t *testing.T) {
	cfg := testConfig()
	cfg.LowPriceRatio = 0.1
	cfg.HighPriceRatio = 10
	// Wide band so nothing is removed; CV of this sample is above 0.25.
	out := EvaluateBand(quotes(10, 50, 100), cfg)

	assert.Equal(t, model.MethodMedian, out.Method)
	assert.InDelta(t, 50.0, out.Reference, 0.0001)
}

func TestEvaluateBand_InexequibleRemoved(t *testing.T) {
	cfg := testConfig()
	out := EvaluateBand(quotes(100, 105, 110, 102, 1), cfg)

	assert.True(t, out.HadInexequible)
	require.Len(t, out.Excluded, 1)
	assert.Equal(t, 1.0, out.Excluded[0].Quotation.Price)
	assert.Equal(t, model.ReasonInexequible, out.Excluded[0].Reason)
	assert.Len(t, out.Valid, 4)
}

func TestEvaluateBand_PublicSourceExemptFromInexequible(t *testing.T) {
	qs := quotes(100, 105, 110, 102)
	qs = append(qs, model.Quotation{
		ID: "pub", Source: "Comprasnet", SourceType: model.SourcePriceBank, Price: 1,
	})
	out := EvaluateBand(qs, testConfig())

	// The below-band public price stays in the valid set with a note.
	assert.False(t, out.HadInexequible)
	assert.Len(t, out.Valid, 5)
	assert.Empty(t, out.Excluded)
	require.NotEmpty(t, out.Notes)
	assert.Contains(t, out.Notes[0], "public-administration")
}

func TestEvaluateBand_FloorBlocksRemoval(t *testing.T) {
	// Removing the outlier would leave 2 < floor 3, so the set stands.
	out := EvaluateBand(quotes(10, 11, 1000), testConfig())

	assert.False(t, out.Insufficient)
	assert.True(t, out.HadExcessive)
	assert.Len(t, out.Valid, 3)
	assert.Empty(t, out.Excluded)
	require.NotEmpty(t, out.Notes)
	assert.Contains(t, out.Notes[len(out.Notes)-1], "band violations remain")
}

func TestEvaluateBand_BelowFloor(t *testing.T) {
	out := EvaluateBand(quotes(10, 11), testConfig())

	assert.True(t, out.Insufficient)
	assert.Zero(t, out.Iterations)
	assert.Len(t, out.Valid, 2)
}

func TestEvaluateBand_TerminatesWithinBound(t *testing.T) {
	cfg := testConfig()
	cfg.LowPriceRatio = 0.9
	cfg.HighPriceRatio = 1.1

	qs := quotes(100, 100, 100, 100, 100, 115, 140, 170, 210)
	out := EvaluateBand(qs, cfg)

	assert.LessOrEqual(t, out.Iterations, len(qs))
	assert.GreaterOrEqual(t, len(out.Valid), cfg.MinValidQuotations)
	assert.Equal(t, len(qs), len(out.Valid)+len(out.Excluded))
}
