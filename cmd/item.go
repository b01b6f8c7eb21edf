package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/licita-tools/pesquisa-cli/internal/session"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items of a session",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <session-id>",
	Short: "Add an item to a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		unitOfMeasure, _ := cmd.Flags().GetString("unit")
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		reference, _ := cmd.Flags().GetFloat64("reference")
		contracted, _ := cmd.Flags().GetFloat64("contracted")

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := loadManager(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}

		it, err := mgr.AddItem(description, unitOfMeasure, quantity, reference, contracted)
		if err != nil {
			return err
		}
		if err := st.SaveSession(cmd.Context(), mgr.Session()); err != nil {
			return err
		}
		fmt.Println(it.ID)
		return nil
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <session-id> <item>",
	Short: "Remove an item (by index or ID)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args, func(mgr *session.Manager, itemID string) error {
			return mgr.RemoveItem(itemID)
		})
	},
}

var itemMoveCmd = &cobra.Command{
	Use:   "move <session-id> <item>",
	Short: "Move an item up or down in report order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, _ := cmd.Flags().GetInt("by")
		return withItem(cmd, args, func(mgr *session.Manager, itemID string) error {
			return mgr.MoveItem(itemID, delta)
		})
	},
}

var itemDuplicateCmd = &cobra.Command{
	Use:   "duplicate <session-id> <item>",
	Short: "Duplicate an item with its quotations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args, func(mgr *session.Manager, itemID string) error {
			dup, err := mgr.DuplicateItem(itemID)
			if err != nil {
				return err
			}
			fmt.Println(dup.ID)
			return nil
		})
	},
}

func init() {
	f := itemAddCmd.Flags()
	f.String("description", "", "item description (required)")
	f.String("unit", "", "unit of measure")
	f.Float64("quantity", 1, "estimated quantity")
	f.Float64("reference", 0, "estimated reference unit value")
	f.Float64("contracted", 0, "contracted unit value (contract extension)")
	_ = itemAddCmd.MarkFlagRequired("description")

	itemMoveCmd.Flags().Int("by", -1, "positions to move (negative = up)")

	itemCmd.AddCommand(itemAddCmd, itemRemoveCmd, itemMoveCmd, itemDuplicateCmd)
	rootCmd.AddCommand(itemCmd)
}
