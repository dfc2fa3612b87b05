package share

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/cli/output"
	"github.com/spf13/cobra"
)

var linkExpiresHours int

var linkCmd = &cobra.Command{
	Use:   "link <document-id>",
	Short: "Create a public share link",
	Long: `Create an anonymous share link for a document.

Anyone holding the link can read the document until the link expires or
is revoked. Revoking a link burns its token permanently; re-sharing the
same document mints a fresh link.

Examples:
  # Create a link that never expires
  pbctl share link 6b1f...

  # Create a link valid for 48 hours
  pbctl share link 6b1f... --expires-hours 48`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().IntVar(&linkExpiresHours, "expires-hours", 0, "Hours until the link expires (0 = never)")
}

func runLink(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	link, err := client.CreatePublicLink(args[0], linkExpiresHours)
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, link)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, link)
	default:
		cmdutil.PrintSuccess("Public link created")
		fmt.Printf("  URL:      %s\n", link.URL)
		if link.ExpiresAt != nil {
			fmt.Printf("  Expires:  %s\n", link.ExpiresAt.Local())
		} else {
			fmt.Println("  Expires:  never")
		}
		fmt.Printf("  Share ID: %s\n", link.ID)
	}

	return nil
}
