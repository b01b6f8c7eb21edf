package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_EmptySample(t *testing.T) {
	_, err := Describe(nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestDescribe_SingleValue(t *testing.T) {
	s, err := Describe([]float64{42.5}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 42.5, s.Mean)
	assert.Equal(t, 42.5, s.Median)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.CV)
}

func TestMedian(t *testing.T) {
	t.Run("odd count", func(t *testing.T) {
		assert.Equal(t, 11.0, Median([]float64{12, 10, 11}))
	})

	t.Run("even count interpolates", func(t *testing.T) {
		assert.Equal(t, 11.5, Median([]float64{12, 10, 11, 13}))
	})

	t.Run("input not modified", func(t *testing.T) {
		in := []float64{3, 1, 2}
		Median(in)
		assert.Equal(t, []float64{3, 1, 2}, in)
	})
}

func TestStdDev_Variants(t *testing.T) {
	prices := []float64{10, 12, 11, 13}

	// population: mean 11.5, ss = 2.25+0.25+0.25+2.25 = 5 -> sqrt(5/4)
	assert.InDelta(t, 1.1180, StdDev(prices, false), 0.0001)
	// sample: sqrt(5/3)
	assert.InDelta(t, 1.2910, StdDev(prices, true), 0.0001)
}

func TestDescribe_BoundsAndCV(t *testing.T) {
	samples := [][]float64{
		{10, 12, 11, 1000},
		{5.5},
		{1, 1, 1},
		{0.01, 99999},
	}
	for _, prices := range samples {
		s, err := Describe(prices, false)
		require.NoError(t, err)

		lo, hi := prices[0], prices[0]
		for _, p := range prices {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		assert.GreaterOrEqual(t, s.Mean, lo)
		assert.LessOrEqual(t, s.Mean, hi)
		assert.GreaterOrEqual(t, s.Median, lo)
		assert.LessOrEqual(t, s.Median, hi)
		assert.GreaterOrEqual(t, s.CV, 0.0)
	}
}

func TestDescribe_Scenario(t *testing.T) {
	s, err := Describe([]float64{10, 12, 11, 1000}, false)
	require.NoError(t, err)
	assert.InDelta(t, 258.25, s.Mean, 0.001)
	assert.InDelta(t, 11.5, s.Median, 0.001)
	assert.Greater(t, s.CV, 1.0) // wildly dispersed sample
}
