package document

import (
	"fmt"
	"io"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <document-id>",
	Short: "Download a document's content",
	Long: `Download the current content of a document.

By default, content is written to a file named after the document in the
current directory. Use --file to choose the destination, or "-" for stdout.

Examples:
  # Download to the document's name
  pbctl document download 6b1f...

  # Download to a specific file
  pbctl document download 6b1f... --file /tmp/report.docx

  # Stream to stdout
  pbctl document download 6b1f... --file -`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadOutput, "file", "", "Destination file (\"-\" for stdout)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	docID := args[0]

	dest := downloadOutput
	if dest == "" {
		doc, err := client.GetDocument(docID)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		dest = doc.Name
	}

	content, err := client.DownloadDocument(docID)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = content.Close() }()

	if dest == "-" {
		_, err = io.Copy(os.Stdout, content)
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	written, err := io.Copy(out, content)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Downloaded %d bytes to %s", written, dest))
	return nil
}
