package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// ErrConfiguration marks threshold values outside sane ranges. Config
// updates fail fast with it and leave the prior configuration untouched.
var ErrConfiguration = eris.New("invalid analysis configuration")

// AnalysisConfig holds the evaluation thresholds of a session. Values are
// institution policy, supplied through configuration rather than
// hard-coded.
type AnalysisConfig struct {
	// CVHighThreshold is the coefficient-of-variation ratio above which
	// the median replaces the mean as the price reference.
	CVHighThreshold float64 `json:"cv_high_threshold" yaml:"cv_high_threshold" mapstructure:"cv_high_threshold"`
	// LowPriceRatio and HighPriceRatio multiply the reference value to
	// form the admissible price band.
	LowPriceRatio  float64 `json:"low_price_ratio" yaml:"low_price_ratio" mapstructure:"low_price_ratio"`
	HighPriceRatio float64 `json:"high_price_ratio" yaml:"high_price_ratio" mapstructure:"high_price_ratio"`
	// MinValidQuotations is the admissibility floor.
	MinValidQuotations int `json:"min_valid_quotations" yaml:"min_valid_quotations" mapstructure:"min_valid_quotations"`
	// CurrencyPrecision is the number of decimal places of the suggested
	// price.
	CurrencyPrecision int `json:"currency_precision" yaml:"currency_precision" mapstructure:"currency_precision"`
	// SampleStdDev selects the sample (n-1) standard deviation instead of
	// the population variant.
	SampleStdDev bool `json:"sample_std_dev" yaml:"sample_std_dev" mapstructure:"sample_std_dev"`
}

// Validate checks the thresholds as a whole. Any violation is reported
// with ErrConfiguration in the chain.
func (c AnalysisConfig) Validate() error {
	if c.CVHighThreshold < 0 {
		return eris.Wrapf(ErrConfiguration, "cv_high_threshold must be >= 0 (got %g)", c.CVHighThreshold)
	}
	if c.LowPriceRatio <= 0 || c.HighPriceRatio <= 0 {
		return eris.Wrapf(ErrConfiguration, "price ratios must be positive (got low=%g high=%g)", c.LowPriceRatio, c.HighPriceRatio)
	}
	if c.LowPriceRatio >= c.HighPriceRatio {
		return eris.Wrapf(ErrConfiguration, "low_price_ratio must be below high_price_ratio (got low=%g high=%g)", c.LowPriceRatio, c.HighPriceRatio)
	}
	if c.MinValidQuotations < 1 {
		return eris.Wrapf(ErrConfiguration, "min_valid_quotations must be >= 1 (got %d)", c.MinValidQuotations)
	}
	if c.CurrencyPrecision < 0 || c.CurrencyPrecision > 6 {
		return eris.Wrapf(ErrConfiguration, "currency_precision must be between 0 and 6 (got %d)", c.CurrencyPrecision)
	}
	return nil
}

// AnalysisSession is one price-research process: its analysis type and
// launch mode, the items in report order and the active thresholds.
type AnalysisSession struct {
	ID            string         `json:"id"`
	ProcessNumber string         `json:"process_number,omitempty"`
	Type          AnalysisType   `json:"type"`
	Mode          LaunchMode     `json:"mode"`
	Items         []Item         `json:"items"`
	Config        AnalysisConfig `json:"config"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// FindItem returns the index of the item with the given ID, or -1.
func (s *AnalysisSession) FindItem(itemID string) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
