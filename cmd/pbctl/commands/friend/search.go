package friend

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by username",
	Long: `Search for users to befriend. The query must be at least two
characters long.

Examples:
  # Find users whose username contains "bo"
  pbctl friend search bo`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// UserList is a list of users for table rendering.
type UserList []apiclient.User

// Headers implements TableRenderer.
func (ul UserList) Headers() []string {
	return []string{"ID", "USERNAME"}
}

// Rows implements TableRenderer.
func (ul UserList) Rows() [][]string {
	rows := make([][]string, 0, len(ul))
	for _, u := range ul {
		rows = append(rows, []string{u.ID, u.Username})
	}
	return rows
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	users, err := client.SearchUsers(args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, users, len(users) == 0, "No users found.", UserList(users))
}
