package users

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ttttttwt/final-test/cmd/cli/output"
	"github.com/ttttttwt/final-test/cmd/cli/root"
	"github.com/ttttttwt/final-test/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage blog accounts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE:  runList,
	}

	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account",
		Long:  "Create an account with the given username. Prompts for the password.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}

	usersCmd.AddCommand(listCmd, createCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repo.NewUserRepo(db).List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.ID, u.Username})
	}
	output.RenderTable([]string{"ID", "Username"}, rows)
	return nil
}

// ==========================
// Create User
// ==========================
func runCreate(cmd *cobra.Command, args []string) error {
	username := args[0]

	var password string
	fmt.Print("Password: ")
	fmt.Scanln(&password)
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repo.NewUserRepo(db).Create(context.Background(), username, string(hash))
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q (id=%d)\n", user.Username, user.ID)
	return nil
}
