package document

import (
	"fmt"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document",
	Long: `Delete a document, its content, and all shares pointing at it.
The document's bytes are released from your quota.

Examples:
  # Delete a document
  pbctl document delete 6b1f...

  # Delete without confirmation
  pbctl document delete 6b1f... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	docID := args[0]
	doc, err := client.GetDocument(docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	return cmdutil.RunDeleteWithConfirmation("Document", doc.Name, deleteForce, func() error {
		return client.DeleteDocument(docID)
	})
}
