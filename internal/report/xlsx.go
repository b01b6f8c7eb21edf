package report

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// WriteXLSX saves the consolidated report as a workbook with a summary
// sheet and a per-item audit sheet listing exclusions and warnings.
func WriteXLSX(path string, sess *model.AnalysisSession, rep *model.ConsolidatedReport) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Consolidation")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	head := sheet.AddRow()
	for _, h := range []string{
		"ITEM", "PROCESS", "DESCRIPTION", "UNIT", "QTY", "METHOD",
		"UNIT MARKET VALUE", "TOTAL MARKET VALUE", "STATUS",
	} {
		head.AddCell().Value = h
	}

	for i, res := range rep.Results {
		it := itemFor(sess, res.ItemID)
		row := sheet.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().Value = rep.ProcessNumber
		row.AddCell().Value = it.Description
		row.AddCell().Value = it.Unit
		row.AddCell().SetFloat(it.Quantity)
		row.AddCell().Value = strings.ToUpper(string(res.Method))
		row.AddCell().SetFloat(res.SuggestedPrice)
		row.AddCell().SetFloat(res.SuggestedTotal)
		row.AddCell().Value = StatusLabel(string(res.Status))
	}

	totals := sheet.AddRow()
	totals.AddCell().Value = "TOTAL"
	for i := 0; i < 6; i++ {
		totals.AddCell()
	}
	totals.AddCell().SetFloat(rep.TotalMarketValue)

	audit, err := f.AddSheet("Audit")
	if err != nil {
		return eris.Wrap(err, "report: add audit sheet")
	}
	auditHead := audit.AddRow()
	for _, h := range []string{"ITEM", "KIND", "SOURCE", "DETAIL"} {
		auditHead.AddCell().Value = h
	}
	for i, res := range rep.Results {
		for _, ex := range res.Excluded {
			row := audit.AddRow()
			row.AddCell().SetInt(i + 1)
			row.AddCell().Value = string(ex.Reason)
			row.AddCell().Value = ex.Quotation.Source
			row.AddCell().Value = ex.Note
		}
		for _, warn := range res.Warnings {
			row := audit.AddRow()
			row.AddCell().SetInt(i + 1)
			row.AddCell().Value = "warning"
			row.AddCell().Value = ""
			row.AddCell().Value = warn
		}
	}

	return eris.Wrapf(f.Save(path), "report: save %s", path)
}
