package engine

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// Evaluator applies the full per-item pipeline: structural screening,
// the iterative band rule and price selection. Evaluation is pure and
// deterministic; re-running over unchanged quotations yields an identical
// result.
type Evaluator struct {
	cfg model.AnalysisConfig
}

// New builds an Evaluator, failing fast on invalid thresholds.
func New(cfg model.AnalysisConfig) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "engine: new evaluator")
	}
	return &Evaluator{cfg: cfg}, nil
}

// EvaluateItem computes the ItemResult for one item. The suggested price
// is the final-iteration reference (mean or median per the dispersion
// rule), rounded to the configured currency precision, and is computed
// from the final valid set only.
func (e *Evaluator) EvaluateItem(it *model.Item) model.ItemResult {
	res := model.ItemResult{ItemID: it.ID}

	valid, excluded := Screen(it.Quotations)
	out := EvaluateBand(valid, e.cfg)

	res.Excluded = append(excluded, out.Excluded...)
	res.ValidCount = len(out.Valid)
	res.Iterations = out.Iterations
	res.Warnings = append(res.Warnings, out.Notes...)

	if len(it.Quotations) > 0 && it.PublicSourceShare() < 0.5 {
		res.Warnings = append(res.Warnings,
			"public-administration prices are not the majority of the sources")
	}

	switch {
	case out.Insufficient:
		res.Status = model.StatusInsufficientData
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"fewer than %d valid quotations: the estimate is not defensible",
			e.cfg.MinValidQuotations))
		return res
	case out.HadInexequible:
		res.Status = model.StatusInexequibleFlag
	case out.HadExcessive:
		res.Status = model.StatusExcessiveFlag
	default:
		res.Status = model.StatusValid
	}

	res.Mean = out.Summary.Mean
	res.Median = out.Summary.Median
	res.StdDev = out.Summary.StdDev
	res.CV = out.Summary.CV
	res.Method = out.Method
	res.SuggestedPrice = roundTo(out.Reference, e.cfg.CurrencyPrecision)
	res.SuggestedTotal = roundTo(it.Quantity*res.SuggestedPrice, e.cfg.CurrencyPrecision)

	if best := minPrice(out.Valid); best != nil {
		q := *best
		res.BestPrice = &q
	}

	zap.L().Debug("engine: item evaluated",
		zap.String("item_id", it.ID),
		zap.Int("valid_count", res.ValidCount),
		zap.Int("iterations", res.Iterations),
		zap.String("status", string(res.Status)),
		zap.String("method", string(res.Method)),
		zap.Float64("suggested_price", res.SuggestedPrice),
	)

	return res
}

// minPrice returns the lowest-priced quotation; ties keep entry order.
func minPrice(quotations []model.Quotation) *model.Quotation {
	var best *model.Quotation
	for i := range quotations {
		if best == nil || quotations[i].Price < best.Price {
			best = &quotations[i]
		}
	}
	return best
}

func roundTo(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}
