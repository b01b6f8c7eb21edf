package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// WriteCSV writes the consolidated report as CSV, one row per item, with
// type-specific value columns appended for extension and map analyses.
func WriteCSV(w io.Writer, sess *model.AnalysisSession, rep *model.ConsolidatedReport) error {
	cw := csv.NewWriter(w)

	header := []string{
		"item", "process", "description", "unit", "quantity",
		"valid_quotations", "method", "cv", "unit_market_value",
		"total_market_value", "status",
	}
	switch rep.Type {
	case model.TypeContractExtension:
		header = append(header, "unit_contracted_value", "total_contracted_value")
	case model.TypeComparativeMap:
		header = append(header, "best_price_source", "unit_best_price", "total_best_price")
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}

	for i, res := range rep.Results {
		it := itemFor(sess, res.ItemID)
		row := []string{
			strconv.Itoa(i + 1),
			rep.ProcessNumber,
			it.Description,
			it.Unit,
			formatFloat(it.Quantity),
			strconv.Itoa(res.ValidCount),
			string(res.Method),
			formatFloat(res.CV),
			formatFloat(res.SuggestedPrice),
			formatFloat(res.SuggestedTotal),
			string(res.Status),
		}
		switch rep.Type {
		case model.TypeContractExtension:
			row = append(row,
				formatFloat(it.ContractedValue),
				formatFloat(it.Quantity*it.ContractedValue))
		case model.TypeComparativeMap:
			source, unitBest, totalBest := "", 0.0, 0.0
			if res.BestPrice != nil {
				source = res.BestPrice.Source
				unitBest = res.BestPrice.Price
				totalBest = it.Quantity * res.BestPrice.Price
			}
			row = append(row, source, formatFloat(unitBest), formatFloat(totalBest))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "report: write csv row %d", i+1)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
