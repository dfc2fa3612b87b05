// Package friend implements friendship subcommands for pbctl.
package friend

import (
	"github.com/spf13/cobra"
)

// Cmd is the friend subcommand.
var Cmd = &cobra.Command{
	Use:     "friend",
	Aliases: []string{"friends"},
	Short:   "Manage friendships",
	Long: `Send, accept, and list friend requests.

Friendship is the prerequisite for friend shares: you can only share a
document with a user after they accept your request (or you accept
theirs).

Subcommands:
  request  Send a friend request
  accept   Accept an incoming friend request
  list     List friends and pending requests
  search   Search users by username`,
}

func init() {
	Cmd.AddCommand(requestCmd)
	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(searchCmd)
}
