package friend

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List friends and pending requests",
	Long: `List accepted friendships and pending requests in both directions.

Incoming pending requests show the request ID to pass to 'pbctl friend accept'.

Examples:
  # List friends
  pbctl friend list

  # List as JSON
  pbctl friend list -o json`,
	RunE: runList,
}

// FriendshipList is a list of friendships for table rendering.
type FriendshipList []apiclient.Friendship

// Headers implements TableRenderer.
func (fl FriendshipList) Headers() []string {
	return []string{"ID", "USER", "STATUS", "DIRECTION"}
}

// Rows implements TableRenderer.
func (fl FriendshipList) Rows() [][]string {
	rows := make([][]string, 0, len(fl))
	for _, f := range fl {
		username := "-"
		if f.User != nil {
			username = f.User.Username
		}
		direction := "sent"
		if f.Incoming {
			direction = "received"
		}
		rows = append(rows, []string{f.ID, username, f.Status, direction})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	friends, err := client.ListFriends()
	if err != nil {
		return fmt.Errorf("failed to list friends: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, friends, len(friends) == 0, "No friends yet. Use 'pbctl friend request <username>' to send a request.", FriendshipList(friends))
}
