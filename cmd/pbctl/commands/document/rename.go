package document

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <document-id> <new-name>",
	Short: "Rename a document",
	Long: `Change a document's display name. Content and version are unchanged.

Examples:
  # Rename a document
  pbctl document rename 6b1f... "Q4 report.docx"`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	doc, err := client.RenameDocument(args[0], args[1])
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, doc,
		fmt.Sprintf("Document renamed to '%s'", doc.Name))
}
