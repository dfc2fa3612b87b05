package share

import (
	"fmt"
	"os"
	"time"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List shares you have granted",
	Long: `List all active shares you have granted, both friend shares and
public links.

Examples:
  # List granted shares
  pbctl share list

  # List as JSON
  pbctl share list -o json`,
	RunE: runList,
}

// ShareList is a list of shares for table rendering.
type ShareList []apiclient.Share

// Headers implements TableRenderer.
func (sl ShareList) Headers() []string {
	return []string{"ID", "DOCUMENT", "TYPE", "GRANTEE", "EXPIRES", "CREATED"}
}

// Rows implements TableRenderer.
func (sl ShareList) Rows() [][]string {
	rows := make([][]string, 0, len(sl))
	for _, s := range sl {
		grantee := "-"
		if s.GranteeID != nil {
			grantee = *s.GranteeID
		}
		expires := "never"
		if s.ExpiresAt != nil {
			expires = s.ExpiresAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			s.ID,
			s.DocumentID,
			s.Type,
			grantee,
			expires,
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	shares, err := client.ListShares()
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, shares, len(shares) == 0, "No shares granted.", ShareList(shares))
}
