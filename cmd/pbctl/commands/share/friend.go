package share

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var friendCmd = &cobra.Command{
	Use:   "friend <document-id> <username>",
	Short: "Share a document with a friend",
	Long: `Grant a friend read access to one of your documents.

The grantee must already be an accepted friend; use 'pbctl friend request'
to send a friend request first.

Examples:
  # Share a document with bob
  pbctl share friend 6b1f... bob`,
	Args: cobra.ExactArgs(2),
	RunE: runFriend,
}

func runFriend(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	grant, err := client.ShareToFriend(args[0], args[1])
	if err != nil {
		return fmt.Errorf("share failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, grant,
		fmt.Sprintf("Document shared with '%s' (share id: %s)", args[1], grant.ID))
}
