// Package importer reads quotation spreadsheets into a session. Two
// layouts are supported, one per launch mode: a flat per-quotation row
// layout and a source-matrix layout with one column per source.
package importer

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
)

// ItemImport is one parsed item with its quotations, before IDs are
// assigned by the session manager.
type ItemImport struct {
	Description     string
	Unit            string
	Quantity        float64
	ReferenceValue  float64
	ContractedValue float64
	Quotations      []model.Quotation
}

// Apply adds the parsed items and quotations to the session through the
// manager, preserving file order. Returns the number of items and
// quotations added.
func Apply(mgr *session.Manager, imports []ItemImport) (items, quotations int, err error) {
	for _, imp := range imports {
		it, err := mgr.AddItem(imp.Description, imp.Unit, imp.Quantity, imp.ReferenceValue, imp.ContractedValue)
		if err != nil {
			return items, quotations, eris.Wrapf(err, "importer: item %q", imp.Description)
		}
		items++
		for _, q := range imp.Quotations {
			if _, err := mgr.AddQuotation(it.ID, q); err != nil {
				return items, quotations, eris.Wrapf(err, "importer: quotation %q on item %q", q.Source, imp.Description)
			}
			quotations++
		}
	}

	zap.L().Info("importer: applied",
		zap.Int("items", items),
		zap.Int("quotations", quotations),
	)
	return items, quotations, nil
}

func quotationFromRow(row []string, srcType model.SourceType, price float64) model.Quotation {
	return model.Quotation{
		Source:     strings.TrimSpace(row[3]),
		SourceType: srcType,
		Locator:    strings.TrimSpace(row[5]),
		Price:      price,
	}
}

func quotationFromSource(source string, srcType model.SourceType, price float64) model.Quotation {
	return model.Quotation{
		Source:     source,
		SourceType: srcType,
		Price:      price,
	}
}

// parseSourceType maps spreadsheet source-type labels (English or the
// original Portuguese forms) to a SourceType.
func parseSourceType(s string) (model.SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "supplier", "fornecedor":
		return model.SourceSupplier, nil
	case "contract", "contrato":
		return model.SourceContract, nil
	case "price_bank", "price bank", "banco de preços", "banco de precos", "comprasnet", "banco de preços/comprasnet":
		return model.SourcePriceBank, nil
	case "price_registry", "price registry", "ata", "ata de registro de preços", "ata de registro de precos":
		return model.SourcePriceRegistry, nil
	}
	return "", eris.Errorf("importer: unknown source type %q", s)
}

// parsePrice accepts both decimal-point and Brazilian decimal-comma
// notation ("1.234,56").
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, eris.New("importer: empty price")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "importer: parse price %q", s)
	}
	return v, nil
}

func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "importer: parse quantity %q", s)
	}
	return v, nil
}
