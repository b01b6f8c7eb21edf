// Package engine implements the price-evaluation rules: structural
// screening of quotations, the iterative admissible-band algorithm and
// per-item evaluation.
package engine

import (
	"fmt"
	"math"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// Screen partitions quotations into the structurally valid working set
// and the quotations excluded before any statistical pass. Excluded
// quotations never re-enter the evaluator.
func Screen(quotations []model.Quotation) ([]model.Quotation, []model.ExcludedQuotation) {
	var valid []model.Quotation
	var excluded []model.ExcludedQuotation

	for _, q := range quotations {
		switch {
		case q.ManualExclude:
			note := "excluded by the researcher"
			if q.Justification != "" {
				note = fmt.Sprintf("excluded by the researcher: %s", q.Justification)
			}
			excluded = append(excluded, model.ExcludedQuotation{
				Quotation: q,
				Reason:    model.ReasonManualExclusion,
				Note:      note,
			})
		case q.Price <= 0 || math.IsNaN(q.Price) || math.IsInf(q.Price, 0):
			excluded = append(excluded, model.ExcludedQuotation{
				Quotation: q,
				Reason:    model.ReasonInvalidPrice,
				Note:      fmt.Sprintf("price %v is not a positive number", q.Price),
			})
		default:
			valid = append(valid, q)
		}
	}

	return valid, excluded
}
