package engine

import (
	"fmt"

	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/stats"
)

// BandOutcome is the result of the iterative admissible-band evaluation
// over one item's structurally valid quotations.
type BandOutcome struct {
	Valid          []model.Quotation
	Summary        stats.Summary
	Method         model.PriceMethod
	Reference      float64
	Excluded       []model.ExcludedQuotation
	Notes          []string
	Iterations     int
	Insufficient   bool
	HadInexequible bool
	HadExcessive   bool
}

// EvaluateBand runs the iterative price-band rule until the valid set
// reaches a fixed point. Each iteration recomputes the statistics, anchors
// the admissible band on the mean (or the median under high dispersion)
// and removes quotations strictly outside the band. The set strictly
// shrinks whenever it changes, so the loop terminates within the initial
// count of quotations.
//
// Below-band quotations from public-administration sources are kept valid
// with a note, following the institutional manual.
func EvaluateBand(quotations []model.Quotation, cfg model.AnalysisConfig) BandOutcome {
	out := BandOutcome{Valid: quotations}

	current := quotations
	for {
		if len(current) < cfg.MinValidQuotations {
			out.Valid = current
			out.Insufficient = true
			return out
		}

		out.Iterations++
		prices := make([]float64, len(current))
		for i, q := range current {
			prices[i] = q.Price
		}
		sum, err := stats.Describe(prices, cfg.SampleStdDev)
		if err != nil {
			// Unreachable: the floor check above guarantees a non-empty
			// sample.
			out.Valid = current
			out.Insufficient = true
			return out
		}

		method, ref := model.MethodMean, sum.Mean
		if sum.CV == stats.CVUndefined || sum.CV > cfg.CVHighThreshold {
			method, ref = model.MethodMedian, sum.Median
		}
		low := ref * cfg.LowPriceRatio
		high := ref * cfg.HighPriceRatio

		var keep []model.Quotation
		var removed []model.ExcludedQuotation
		var iterNotes []string
		for _, q := range current {
			switch {
			case q.Price < low && q.SourceType.Public():
				// Public-administration prices are exempt from the
				// inexequible exclusion.
				iterNotes = append(iterNotes, fmt.Sprintf(
					"quotation from %s kept despite being below the admissible band (%.2f%% of reference): public-administration price",
					q.Source, q.Price/ref*100))
				keep = append(keep, q)
			case q.Price < low:
				out.HadInexequible = true
				removed = append(removed, model.ExcludedQuotation{
					Quotation: q,
					Reason:    model.ReasonInexequible,
					Note:      fmt.Sprintf("price is %.2f%% of the reference value %.4f", q.Price/ref*100, ref),
				})
			case q.Price > high:
				out.HadExcessive = true
				removed = append(removed, model.ExcludedQuotation{
					Quotation: q,
					Reason:    model.ReasonExcessive,
					Note:      fmt.Sprintf("price is %.2f%% of the reference value %.4f", q.Price/ref*100, ref),
				})
			default:
				keep = append(keep, q)
			}
		}

		out.Summary = sum
		out.Method = method
		out.Reference = ref

		if len(removed) == 0 {
			out.Valid = current
			out.Notes = iterNotes
			return out
		}
		if len(keep) < cfg.MinValidQuotations {
			// Applying the removals would breach the admissibility floor;
			// the current set stands and the violations only flag the item.
			out.Valid = current
			out.Notes = append(iterNotes, fmt.Sprintf(
				"price band violations remain: removing them would leave fewer than %d valid quotations",
				cfg.MinValidQuotations))
			return out
		}

		out.Excluded = append(out.Excluded, removed...)
		current = keep
	}
}
