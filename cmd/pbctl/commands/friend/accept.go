package friend

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept an incoming friend request",
	Long: `Accept a pending friend request addressed to you.

Use 'pbctl friend list' to see pending requests and their IDs.

Examples:
  # Accept a request
  pbctl friend accept 4f7e...`,
	Args: cobra.ExactArgs(1),
	RunE: runAccept,
}

func runAccept(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req, err := client.AcceptFriend(args[0])
	if err != nil {
		return fmt.Errorf("accept failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, req, "Friend request accepted")
}
