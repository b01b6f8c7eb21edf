package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// RenderTable writes the synthetic report for the session to w. The
// headline totals follow the analysis type, as in the institutional
// report templates.
func RenderTable(w io.Writer, sess *model.AnalysisSession, rep *model.ConsolidatedReport) error {
	title := map[model.AnalysisType]string{
		model.TypeStandardResearch:  "SYNTHETIC REPORT - STANDARD RESEARCH",
		model.TypeContractExtension: "SYNTHETIC REPORT - CONTRACT EXTENSION",
		model.TypeComparativeMap:    "SYNTHETIC REPORT - COMPARATIVE PRICE MAP",
	}[rep.Type]
	if title == "" {
		title = "SYNTHETIC REPORT"
	}

	fmt.Fprintln(w, title)
	if rep.ProcessNumber != "" {
		fmt.Fprintf(w, "Process: %s\n", rep.ProcessNumber)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "TOTAL MARKET RESEARCH VALUE: %s\n", Currency(rep.TotalMarketValue))
	switch rep.Type {
	case model.TypeContractExtension:
		diff := rep.TotalContractedValue - rep.TotalMarketValue
		fmt.Fprintf(w, "TOTAL CONTRACTED VALUE:      %s\n", Currency(rep.TotalContractedValue))
		fmt.Fprintf(w, "DIFFERENCE:                  %s - contracted is %s\n",
			Currency(abs(diff)), direction(diff, "MORE EXPENSIVE", "CHEAPER"))
	case model.TypeComparativeMap:
		diff := rep.TotalMarketValue - rep.TotalBestPriceValue
		fmt.Fprintf(w, "TOTAL OF BEST PRICES:        %s\n", Currency(rep.TotalBestPriceValue))
		fmt.Fprintf(w, "BEST PRICES ARE:             %s %s than the researched value\n",
			Currency(abs(diff)), direction(diff, "CHEAPER", "MORE EXPENSIVE"))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tDESCRIPTION\tUNIT\tQTY\tMETHOD\tUNIT VALUE\tTOTAL VALUE\tSTATUS")
	for i, res := range rep.Results {
		it := itemFor(sess, res.ItemID)
		method := strings.ToUpper(string(res.Method))
		unitValue, totalValue := Currency(res.SuggestedPrice), Currency(res.SuggestedTotal)
		if res.Status == model.StatusInsufficientData {
			method, unitValue, totalValue = "-", "-", "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%s\t%s\t%s\t%s\n",
			i+1, it.Description, it.Unit, it.Quantity, method,
			unitValue, totalValue, StatusLabel(string(res.Status)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Audit trail: exclusions and warnings per item.
	for i, res := range rep.Results {
		if len(res.Excluded) == 0 && len(res.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nItem %d - %s\n", i+1, itemFor(sess, res.ItemID).Description)
		for _, ex := range res.Excluded {
			fmt.Fprintf(w, "  excluded %s (%s): %s\n", ex.Quotation.Source, ex.Reason, ex.Note)
		}
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Items: %d", len(rep.Results))
	for _, status := range []model.ItemStatus{
		model.StatusValid, model.StatusInexequibleFlag,
		model.StatusExcessiveFlag, model.StatusInsufficientData,
	} {
		if n := rep.StatusCounts[status]; n > 0 {
			fmt.Fprintf(w, " | %s: %d", StatusLabel(string(status)), n)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func itemFor(sess *model.AnalysisSession, itemID string) *model.Item {
	if idx := sess.FindItem(itemID); idx >= 0 {
		return &sess.Items[idx]
	}
	return &model.Item{}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func direction(diff float64, positive, negative string) string {
	switch {
	case diff > 0:
		return positive
	case diff < 0:
		return negative
	}
	return "EQUAL"
}
