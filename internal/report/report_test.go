package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", Currency(1234.56))
	assert.Equal(t, "R$ 0,00", Currency(0))
	assert.Equal(t, "R$ 11,00", Currency(11))
	assert.Equal(t, "R$ 1.234.567,89", Currency(1234567.89))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "7,43%", Percent(0.0743))
	assert.Equal(t, "100,00%", Percent(1))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "VALID", StatusLabel("valid"))
	assert.Equal(t, "INSUFFICIENT DATA", StatusLabel("insufficient_data"))
	assert.Equal(t, "whatever", StatusLabel("whatever"))
}

func reportSession(t *testing.T, typ model.AnalysisType) (*model.AnalysisSession, *model.ConsolidatedReport) {
	t.Helper()
	mgr, err := session.New(typ, model.ModeItemByItem, "23038.001234/2026-11", model.AnalysisConfig{
		CVHighThreshold:    0.25,
		LowPriceRatio:      0.5,
		HighPriceRatio:     1.5,
		MinValidQuotations: 3,
		CurrencyPrecision:  2,
	})
	require.NoError(t, err)

	it, err := mgr.AddItem("Papel A4", "RESMA", 100, 0, 25)
	require.NoError(t, err)
	for _, p := range []float64{10, 12, 11, 1000} {
		_, err := mgr.AddQuotation(it.ID, model.Quotation{Source: "Fornecedor", Price: p})
		require.NoError(t, err)
	}

	short, err := mgr.AddItem("Caneta", "UNIDADE", 500, 0, 2)
	require.NoError(t, err)
	_, err = mgr.AddQuotation(short.ID, model.Quotation{Source: "Fornecedor", Price: 1.8})
	require.NoError(t, err)

	rep, err := mgr.Consolidate()
	require.NoError(t, err)
	return mgr.Session(), rep
}

func TestRenderTable(t *testing.T) {
	sess, rep := reportSession(t, model.TypeStandardResearch)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sess, rep))
	out := buf.String()

	assert.Contains(t, out, "SYNTHETIC REPORT - STANDARD RESEARCH")
	assert.Contains(t, out, "Process: 23038.001234/2026-11")
	assert.Contains(t, out, "TOTAL MARKET RESEARCH VALUE: R$ 1.100,00")
	assert.Contains(t, out, "Papel A4")
	assert.Contains(t, out, "EXCESSIVE PRICES FLAGGED")
	assert.Contains(t, out, "INSUFFICIENT DATA")
	// Audit trail carries the excluded outlier.
	assert.Contains(t, out, "excluded Fornecedor (excessive)")
}

func TestRenderTableContractExtension(t *testing.T) {
	sess, rep := reportSession(t, model.TypeContractExtension)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sess, rep))
	out := buf.String()

	// Contracted 100 x 25 = 2500 against market 1100.
	assert.Contains(t, out, "TOTAL CONTRACTED VALUE:      R$ 2.500,00")
	assert.Contains(t, out, "MORE EXPENSIVE")
}

func TestRenderTableComparativeMap(t *testing.T) {
	sess, rep := reportSession(t, model.TypeComparativeMap)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sess, rep))
	out := buf.String()

	// Best price 10 x 100 = 1000 against market 1100.
	assert.Contains(t, out, "TOTAL OF BEST PRICES:        R$ 1.000,00")
	assert.Contains(t, out, "CHEAPER")
}

func TestWriteCSV(t *testing.T) {
	sess, rep := reportSession(t, model.TypeStandardResearch)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sess, rep))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := strings.Join(records[0], ",")
	assert.Contains(t, header, "unit_market_value")
	assert.NotContains(t, header, "total_contracted_value")

	assert.Equal(t, "Papel A4", records[1][2])
	assert.Equal(t, "11", records[1][8])
	assert.Equal(t, "excessive_flag", records[1][10])
	assert.Equal(t, "insufficient_data", records[2][10])
}

func TestWriteXLSX(t *testing.T) {
	sess, rep := reportSession(t, model.TypeStandardResearch)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteXLSX(path, sess, rep))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, "Consolidation", f.Sheets[0].Name)
	assert.Equal(t, "Audit", f.Sheets[1].Name)
	// Header plus two items plus the totals row.
	assert.Len(t, f.Sheets[0].Rows, 4)
	assert.Equal(t, "Papel A4", f.Sheets[0].Rows[1].Cells[2].String())
}

func TestWriteCSVContractExtension(t *testing.T) {
	sess, rep := reportSession(t, model.TypeContractExtension)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sess, rep))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	last := records[0][len(records[0])-1]
	assert.Equal(t, "total_contracted_value", last)
	assert.Equal(t, "2500", records[1][len(records[1])-1])
}
