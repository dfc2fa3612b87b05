package friend

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request <username>",
	Short: "Send a friend request",
	Long: `Send a friend request to another user.

The request stays pending until the other user accepts it.

Examples:
  # Send a request to bob
  pbctl friend request bob`,
	Args: cobra.ExactArgs(1),
	RunE: runRequest,
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req, err := client.RequestFriend(args[0])
	if err != nil {
		return fmt.Errorf("friend request failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, req,
		fmt.Sprintf("Friend request sent to '%s' (request id: %s)", args[0], req.ID))
}
