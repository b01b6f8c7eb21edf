package importer

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// ReadXLSX parses an XLSX workbook in the layout of the given launch
// mode. The first sheet is used.
func ReadXLSX(path string, mode model.LaunchMode) ([]ItemImport, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("importer: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = c.String()
		}
		rows = append(rows, cells)
	}

	return parseRows(rows, mode)
}

// parseRows dispatches on the launch mode: flat layout skips one header
// row, the matrix layout consumes two.
func parseRows(rows [][]string, mode model.LaunchMode) ([]ItemImport, error) {
	switch mode {
	case model.ModeItemByItem:
		if len(rows) < 2 {
			return nil, eris.New("importer: file has no data rows")
		}
		return parseFlat(rows[1:])
	case model.ModeBatchBySource:
		if len(rows) < 3 {
			return nil, eris.New("importer: matrix layout needs two header rows and data")
		}
		return parseMatrix(rows[0], rows[1], rows[2:])
	}
	return nil, eris.Errorf("importer: unknown launch mode %q", mode)
}
