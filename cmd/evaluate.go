package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/report"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <session-id> [item]",
	Short: "Evaluate a session's items",
	Long: `Run the statistical evaluation. With an item argument only that item is
evaluated; otherwise every item of the session is. Unchanged items reuse
their cached result.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := loadManager(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	sess := mgr.Session()

	itemIDs := make([]string, 0, len(sess.Items))
	if len(args) == 2 {
		itemID, err := resolveItem(sess, args[1])
		if err != nil {
			return err
		}
		itemIDs = append(itemIDs, itemID)
	} else {
		for i := range sess.Items {
			itemIDs = append(itemIDs, sess.Items[i].ID)
		}
	}

	for _, itemID := range itemIDs {
		res, err := mgr.EvaluateItem(itemID)
		if err != nil {
			return err
		}
		printItemResult(sess, res)
	}
	return nil
}

func printItemResult(sess *model.AnalysisSession, res model.ItemResult) {
	idx := sess.FindItem(res.ItemID)
	it := &sess.Items[idx]

	fmt.Printf("ITEM %d - %s (%s)\n", idx+1, it.Description, it.Unit)
	fmt.Printf("  status: %s\n", report.StatusLabel(string(res.Status)))

	if res.Status != model.StatusInsufficientData {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  valid quotations:\t%d (of %d)\n", res.ValidCount, len(it.Quotations))
		fmt.Fprintf(tw, "  mean:\t%s\n", report.Currency(res.Mean))
		fmt.Fprintf(tw, "  median:\t%s\n", report.Currency(res.Median))
		fmt.Fprintf(tw, "  coefficient of variation:\t%s\n", report.Percent(res.CV))
		fmt.Fprintf(tw, "  statistical method:\t%s\n", strings.ToUpper(string(res.Method)))
		fmt.Fprintf(tw, "  suggested market price:\t%s\n", report.Currency(res.SuggestedPrice))
		fmt.Fprintf(tw, "  suggested total (%g %s):\t%s\n", it.Quantity, it.Unit, report.Currency(res.SuggestedTotal))
		if res.BestPrice != nil {
			fmt.Fprintf(tw, "  best valid price:\t%s (%s)\n", report.Currency(res.BestPrice.Price), res.BestPrice.Source)
		}
		tw.Flush()
	}

	for _, ex := range res.Excluded {
		fmt.Printf("  excluded %s (%s): %s\n", ex.Quotation.Source, ex.Reason, ex.Note)
	}
	for _, warn := range res.Warnings {
		fmt.Printf("  warning: %s\n", warn)
	}
	fmt.Println()
}
