package document

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var replaceVersion int64

var replaceCmd = &cobra.Command{
	Use:   "replace <document-id> <file>",
	Short: "Upload a new version of a document",
	Long: `Replace a document's content with the given file.

The replace is guarded by optimistic concurrency: if someone else has
updated the document since the version you pass (or the current version
fetched automatically), the command fails with a conflict instead of
overwriting their changes.

Examples:
  # Replace using the latest version fetched from the server
  pbctl document replace 6b1f... report.docx

  # Replace only if the document is still at version 3
  pbctl document replace 6b1f... report.docx --version 3`,
	Args: cobra.ExactArgs(2),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().Int64Var(&replaceVersion, "version", 0, "Expected current version (default: fetched from the server)")
}

func runReplace(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	docID := args[0]

	version := replaceVersion
	if version == 0 {
		doc, err := client.GetDocument(docID)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		version = doc.Version
	}

	file, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := client.ReplaceDocument(docID, version, file)
	if err != nil {
		if apiErr, ok := err.(*apiclient.APIError); ok && apiErr.IsConflict() {
			return fmt.Errorf("document was modified concurrently; re-run to retry against the latest version")
		}
		return fmt.Errorf("replace failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, doc,
		fmt.Sprintf("Document '%s' replaced (version: %d)", doc.Name, doc.Version))
}
