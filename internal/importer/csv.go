package importer

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/licita-tools/pesquisa-cli/internal/model"
)

// ReadCSV parses a CSV file in the layout of the given launch mode.
// Records may have a variable number of fields in the matrix layout.
func ReadCSV(path string, mode model.LaunchMode) ([]ItemImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read csv %s", path)
	}

	return parseRows(rows, mode)
}
