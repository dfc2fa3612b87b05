package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a new document",
	Long: `Upload a file as a new document.

The document name defaults to the file's base name; use --name to
override it. The upload is rejected if it would exceed your quota.

Examples:
  # Upload a file
  pbctl document upload report.docx

  # Upload with a different name
  pbctl document upload /tmp/draft.docx --name "Q3 report.docx"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Document name (default: file base name)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	name := uploadName
	if name == "" {
		name = filepath.Base(args[0])
	}

	doc, err := client.UploadDocument(name, file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, doc,
		fmt.Sprintf("Document '%s' uploaded (id: %s, version: %d)", doc.Name, doc.ID, doc.Version))
}
