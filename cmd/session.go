package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/licita-tools/pesquisa-cli/internal/config"
	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
	"github.com/licita-tools/pesquisa-cli/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage analysis sessions",
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new analysis session",
	Long: `Start a new analysis session of a given type and launch mode.

Examples:
  # Standard research, entering quotations item by item
  session new --type standard_research --mode item_by_item --process "STJ 12345/2026"

  # Contract extension using a named threshold preset
  session new --type contract_extension --preset services --presets-file presets.yaml`,
	RunE: runSessionNew,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE:  runSessionList,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.DeleteSession(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted session %s\n", args[0])
		return nil
	},
}

var sessionConfigCmd = &cobra.Command{
	Use:   "config <session-id>",
	Short: "Update a session's evaluation thresholds",
	Long: `Replace the session thresholds. The update is all-or-nothing: invalid
values are rejected and the stored configuration stays unchanged. A
successful update invalidates every cached item result.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionConfig,
}

func init() {
	f := sessionNewCmd.Flags()
	f.String("type", string(model.TypeStandardResearch), "analysis type: standard_research, contract_extension or comparative_map")
	f.String("mode", string(model.ModeItemByItem), "launch mode: item_by_item or batch_by_source")
	f.String("process", "", "administrative process number")
	f.String("preset", "", "named threshold preset")
	f.String("presets-file", "", "YAML file with threshold presets")

	sessionListCmd.Flags().String("type", "", "filter by analysis type")
	sessionListCmd.Flags().Int("limit", 20, "maximum number of sessions")

	cf := sessionConfigCmd.Flags()
	cf.Float64("cv-high", 0, "CV ratio above which the median anchors the band")
	cf.Float64("low-ratio", 0, "lower admissible band multiplier")
	cf.Float64("high-ratio", 0, "upper admissible band multiplier")
	cf.Int("floor", 0, "minimum valid quotations")
	cf.Int("precision", -1, "currency precision in decimal places")

	sessionCmd.AddCommand(sessionNewCmd, sessionListCmd, sessionDeleteCmd, sessionConfigCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, _ []string) error {
	typ, _ := cmd.Flags().GetString("type")
	mode, _ := cmd.Flags().GetString("mode")
	process, _ := cmd.Flags().GetString("process")
	preset, _ := cmd.Flags().GetString("preset")
	presetsFile, _ := cmd.Flags().GetString("presets-file")

	analysisCfg := cfg.Analysis
	if preset != "" {
		if presetsFile == "" {
			return eris.New("session: --preset requires --presets-file")
		}
		pf, err := config.LoadPresets(presetsFile)
		if err != nil {
			return err
		}
		analysisCfg, err = pf.Preset(preset)
		if err != nil {
			return err
		}
	}

	mgr, err := session.New(model.AnalysisType(typ), model.LaunchMode(mode), process, analysisCfg)
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.SaveSession(cmd.Context(), mgr.Session()); err != nil {
		return err
	}

	zap.L().Info("session created",
		zap.String("session_id", mgr.Session().ID),
		zap.String("type", typ),
		zap.String("mode", mode),
	)
	fmt.Println(mgr.Session().ID)
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	typ, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	infos, err := st.ListSessions(cmd.Context(), store.SessionFilter{
		Type:  model.AnalysisType(typ),
		Limit: limit,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROCESS\tTYPE\tITEMS\tUPDATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			info.ID, info.ProcessNumber, info.Type, info.ItemCount,
			info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runSessionConfig(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := loadManager(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}

	next := mgr.Config()
	if cmd.Flags().Changed("cv-high") {
		next.CVHighThreshold, _ = cmd.Flags().GetFloat64("cv-high")
	}
	if cmd.Flags().Changed("low-ratio") {
		next.LowPriceRatio, _ = cmd.Flags().GetFloat64("low-ratio")
	}
	if cmd.Flags().Changed("high-ratio") {
		next.HighPriceRatio, _ = cmd.Flags().GetFloat64("high-ratio")
	}
	if cmd.Flags().Changed("floor") {
		next.MinValidQuotations, _ = cmd.Flags().GetInt("floor")
	}
	if cmd.Flags().Changed("precision") {
		next.CurrencyPrecision, _ = cmd.Flags().GetInt("precision")
	}

	if err := mgr.UpdateConfig(next); err != nil {
		return err
	}
	return st.SaveSession(cmd.Context(), mgr.Session())
}
