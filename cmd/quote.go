package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Manage quotations of an item",
}

var quoteAddCmd = &cobra.Command{
	Use:   "add <session-id> <item>",
	Short: "Add a quotation to an item",
	Long: `Add a quotation. The price must be a positive number; the source type
decides whether the public-administration inexequible exemption applies.

Examples:
  quote add <session> 1 --source "Empresa X" --price 23.90
  quote add <session> 1 --source "Comprasnet" --type price_bank --price 19.50 --locator SEI-0001`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		srcType, _ := cmd.Flags().GetString("type")
		price, _ := cmd.Flags().GetFloat64("price")
		locator, _ := cmd.Flags().GetString("locator")
		note, _ := cmd.Flags().GetString("note")

		return withItem(cmd, args, func(mgr *session.Manager, itemID string) error {
			q, err := mgr.AddQuotation(itemID, model.Quotation{
				Source:     source,
				SourceType: model.SourceType(srcType),
				Price:      price,
				Locator:    locator,
				Note:       note,
			})
			if err != nil {
				return err
			}
			fmt.Println(q.ID)
			return nil
		})
	},
}

var quoteRemoveCmd = &cobra.Command{
	Use:   "remove <session-id> <item> <quotation-id>",
	Short: "Remove a quotation",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[:2], func(mgr *session.Manager, itemID string) error {
			return mgr.RemoveQuotation(itemID, args[2])
		})
	},
}

var quoteExcludeCmd = &cobra.Command{
	Use:   "exclude <session-id> <item> <quotation-id>",
	Short: "Manually exclude a quotation with a justification",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		justification, _ := cmd.Flags().GetString("justification")
		return withItem(cmd, args[:2], func(mgr *session.Manager, itemID string) error {
			return mgr.ExcludeQuotation(itemID, args[2], justification)
		})
	},
}

func init() {
	f := quoteAddCmd.Flags()
	f.String("source", "", "company or source name (required)")
	f.String("type", string(model.SourceSupplier), "source type: supplier, contract, price_bank or price_registry")
	f.Float64("price", 0, "quoted unit price (required)")
	f.String("locator", "", "document locator reference")
	f.String("note", "", "free-form note")
	_ = quoteAddCmd.MarkFlagRequired("source")
	_ = quoteAddCmd.MarkFlagRequired("price")

	quoteExcludeCmd.Flags().String("justification", "", "reason for the manual exclusion")
	_ = quoteExcludeCmd.MarkFlagRequired("justification")

	quoteCmd.AddCommand(quoteAddCmd, quoteRemoveCmd, quoteExcludeCmd)
	rootCmd.AddCommand(quoteCmd)
}
