package importer

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Flat layout (item-by-item mode), one quotation per row:
//
//	description | unit | quantity | source | source_type | locator | price
//
// Consecutive rows with the same description and unit belong to the same
// item.
const flatColumns = 7

// parseFlat converts flat-layout rows (header already skipped) into item
// imports.
func parseFlat(rows [][]string) ([]ItemImport, error) {
	var imports []ItemImport

	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < flatColumns {
			return nil, eris.Errorf("importer: row %d has %d columns, want %d", n+2, len(row), flatColumns)
		}

		desc := strings.TrimSpace(row[0])
		unitOfMeasure := strings.TrimSpace(row[1])
		if desc == "" {
			return nil, eris.Errorf("importer: row %d is missing the item description", n+2)
		}

		qty, err := parseQuantity(row[2])
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", n+2)
		}
		srcType, err := parseSourceType(row[4])
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", n+2)
		}
		price, err := parsePrice(row[6])
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", n+2)
		}

		if len(imports) == 0 || imports[len(imports)-1].Description != desc || imports[len(imports)-1].Unit != unitOfMeasure {
			imports = append(imports, ItemImport{
				Description: desc,
				Unit:        unitOfMeasure,
				Quantity:    qty,
			})
		}
		last := &imports[len(imports)-1]
		last.Quotations = append(last.Quotations, quotationFromRow(row, srcType, price))
	}

	if len(imports) == 0 {
		return nil, eris.New("importer: file contains no data rows")
	}
	return imports, nil
}

// Matrix layout (batch-by-source mode): the first header row names one
// source per column after the three item columns, the second header row
// gives each source's type, and every following row is an item:
//
//	description | unit | quantity | <source A> | <source B> | ...
//	            |      |          | supplier   | price_bank | ...
//	Paper A4    | RESMA| 100      | 23,90      |            | ...
//
// An empty price cell means the source did not quote the item.
func parseMatrix(header, types []string, rows [][]string) ([]ItemImport, error) {
	if len(header) < 4 {
		return nil, eris.New("importer: matrix layout needs at least one source column")
	}
	if len(types) < len(header) {
		return nil, eris.Errorf("importer: source type row has %d columns, header has %d", len(types), len(header))
	}

	sources := header[3:]
	sourceTypes := make([]string, len(sources))
	for i := range sources {
		sources[i] = strings.TrimSpace(sources[i])
		if sources[i] == "" {
			return nil, eris.Errorf("importer: source column %d has an empty name", i+4)
		}
		sourceTypes[i] = types[3+i]
	}

	var imports []ItemImport
	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		desc := strings.TrimSpace(cell(row, 0))
		if desc == "" {
			return nil, eris.Errorf("importer: row %d is missing the item description", n+3)
		}
		qty, err := parseQuantity(cell(row, 2))
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", n+3)
		}

		imp := ItemImport{
			Description: desc,
			Unit:        strings.TrimSpace(cell(row, 1)),
			Quantity:    qty,
		}
		for i, src := range sources {
			raw := strings.TrimSpace(cell(row, 3+i))
			if raw == "" {
				continue
			}
			srcType, err := parseSourceType(sourceTypes[i])
			if err != nil {
				return nil, eris.Wrapf(err, "importer: source %q", src)
			}
			price, err := parsePrice(raw)
			if err != nil {
				return nil, eris.Wrapf(err, "importer: row %d source %q", n+3, src)
			}
			imp.Quotations = append(imp.Quotations, quotationFromSource(src, srcType, price))
		}
		imports = append(imports, imp)
	}

	if len(imports) == 0 {
		return nil, eris.New("importer: file contains no data rows")
	}
	return imports, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
