package root

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ttttttwt/final-test/internal/config"
	"github.com/ttttttwt/final-test/internal/db"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Blog administration CLI",
	Long:  "Command line interface for administering the blog database: users, posts, and sessions.",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// OpenDB connects to the database using the same environment configuration
// as the server. Callers must Close it.
func OpenDB() (*sql.DB, error) {
	cfg := config.Load()
	return db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
}
