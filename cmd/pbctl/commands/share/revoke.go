package share

import (
	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var revokeForce bool

var revokeCmd = &cobra.Command{
	Use:   "revoke <share-id>",
	Short: "Revoke a share",
	Long: `Revoke a share you granted.

For friend shares, the grantee loses access immediately. For public
links, the link's token is burned permanently and can never be reused.

Examples:
  # Revoke a share
  pbctl share revoke 9c2a...

  # Revoke without confirmation
  pbctl share revoke 9c2a... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRevoke,
}

func init() {
	revokeCmd.Flags().BoolVarP(&revokeForce, "force", "f", false, "Skip confirmation")
}

func runRevoke(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Share", args[0], revokeForce, func() error {
		return client.RevokeShare(args[0])
	})
}
