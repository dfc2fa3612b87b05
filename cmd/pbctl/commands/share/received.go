package share

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var receivedCmd = &cobra.Command{
	Use:   "received",
	Short: "List shares granted to you",
	Long: `List documents other users have shared with you.

Examples:
  # List received shares
  pbctl share received

  # List as JSON
  pbctl share received -o json`,
	RunE: runReceived,
}

func runReceived(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	shares, err := client.ListReceivedShares()
	if err != nil {
		return fmt.Errorf("failed to list received shares: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, shares, len(shares) == 0, "No shares received.", ShareList(shares))
}
