package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ttttttwt/final-test/cmd/cli/root"
	"github.com/ttttttwt/final-test/internal/config"
	"github.com/ttttttwt/final-test/internal/session"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions now",
		RunE:  runPurge,
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Show the number of active sessions",
		RunE:  runCount,
	}

	sessionsCmd.AddCommand(purgeCmd, countCmd)
	root.GetRoot().AddCommand(sessionsCmd)
}

func openStore() (*session.Store, func() error, error) {
	db, err := root.OpenDB()
	if err != nil {
		return nil, nil, err
	}
	cfg := config.Load()
	return session.NewStore(db, time.Duration(cfg.SessionTTLHours)*time.Hour), db.Close, nil
}

// ==========================
// Purge Expired Sessions
// ==========================
func runPurge(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := store.PurgeExpired(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Purged %d expired session(s)\n", n)
	return nil
}

// ==========================
// Count Active Sessions
// ==========================
func runCount(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := store.CountActive(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%d active session(s)\n", n)
	return nil
}
