package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/licita-tools/pesquisa-cli/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <session-id>",
	Short: "Consolidate a session and render the synthetic report",
	Long: `Consolidate every item of the session and render the report for its
analysis type.

Examples:
  report <session>
  report <session> --format csv --output consolidation.csv
  report <session> --format xlsx --output consolidation.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("format", "table", "output format: table, csv or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := loadManager(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}

	rep, err := mgr.Consolidate()
	if err != nil {
		return err
	}
	sess := mgr.Session()

	switch format {
	case "table", "csv":
		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return eris.Wrapf(err, "report: create %s", output)
			}
			defer f.Close()
			out = f
		}
		if format == "table" {
			return report.RenderTable(out, sess, rep)
		}
		return report.WriteCSV(out, sess, rep)
	case "xlsx":
		if output == "" {
			return eris.New("report: --format xlsx requires --output")
		}
		return report.WriteXLSX(output, sess, rep)
	}
	return eris.Errorf("report: unknown format %q", format)
}
