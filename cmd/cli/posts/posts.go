package posts

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/ttttttwt/final-test/cmd/cli/output"
	"github.com/ttttttwt/final-test/cmd/cli/root"
	"github.com/ttttttwt/final-test/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect blog posts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts with their authors",
		RunE:  runList,
	}

	postsCmd.AddCommand(listCmd)
	root.GetRoot().AddCommand(postsCmd)
}

// ==========================
// List Posts
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	db, err := root.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	posts, err := repo.NewPostRepo(db).List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(posts))
	for _, p := range posts {
		author := p.Username
		if author == "" {
			author = "(none)"
		}
		rows = append(rows, []interface{}{p.ID, p.Subject, p.Title, author})
	}
	output.RenderTable([]string{"ID", "Subject", "Title", "Author"}, rows)
	return nil
}
