package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/licita-tools/pesquisa-cli/internal/importer"
	"github.com/licita-tools/pesquisa-cli/internal/model"
)

var importCmd = &cobra.Command{
	Use:   "import <session-id> <file>",
	Short: "Import items and quotations from a spreadsheet",
	Long: `Import a quotation file into a session. The expected layout follows the
session's launch mode:

  item_by_item     one quotation per row:
                   description | unit | quantity | source | source_type | locator | price
  batch_by_source  one item per row, one price column per source, with a
                   second header row carrying each source's type

XLSX and CSV are detected by file extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("mode", "", "override the layout (item_by_item or batch_by_source)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := loadManager(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}

	mode := mgr.Session().Mode
	if override, _ := cmd.Flags().GetString("mode"); override != "" {
		mode = model.LaunchMode(override)
		if !mode.Valid() {
			return eris.Errorf("import: unknown mode %q", override)
		}
	}

	path := args[1]
	var imports []importer.ItemImport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		imports, err = importer.ReadXLSX(path, mode)
	case ".csv":
		imports, err = importer.ReadCSV(path, mode)
	default:
		return eris.Errorf("import: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	items, quotations, err := importer.Apply(mgr, imports)
	if err != nil {
		return err
	}
	if err := st.SaveSession(cmd.Context(), mgr.Session()); err != nil {
		return err
	}

	fmt.Printf("imported %d items, %d quotations\n", items, quotations)
	return nil
}
