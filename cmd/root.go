package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/licita-tools/pesquisa-cli/internal/config"
	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
	"github.com/licita-tools/pesquisa-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pesquisa-cli",
	Short: "Market-price research evaluation for public procurement",
	Long:  "Evaluates vendor quotations with the institutional statistical rules: admissible price bands, inexequible/excessive flags and consolidated market-price estimates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore builds the configured session store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.Path)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// loadManager restores the session with the given ID from the store.
func loadManager(ctx context.Context, st store.Store, sessionID string) (*session.Manager, error) {
	sess, err := st.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Restore(sess)
}

// withItem loads the session, resolves the item reference, applies fn and
// persists the session when fn succeeds.
func withItem(cmd *cobra.Command, args []string, fn func(mgr *session.Manager, itemID string) error) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	mgr, err := loadManager(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	itemID, err := resolveItem(mgr.Session(), args[1])
	if err != nil {
		return err
	}
	if err := fn(mgr, itemID); err != nil {
		return err
	}
	return st.SaveSession(cmd.Context(), mgr.Session())
}

// resolveItem accepts a 1-based item index or an item ID.
func resolveItem(sess *model.AnalysisSession, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(sess.Items) {
			return "", eris.Errorf("item %d out of range (session has %d items)", n, len(sess.Items))
		}
		return sess.Items[n-1].ID, nil
	}
	if idx := sess.FindItem(ref); idx >= 0 {
		return ref, nil
	}
	return "", eris.Errorf("item %q not found", ref)
}
