package document

import (
	"fmt"
	"os"
	"time"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/bytesize"
	"github.com/paperbay/paperbay/internal/cli/output"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show a document's metadata",
	Long: `Display metadata for a single document.

Examples:
  # Show document details
  pbctl document get 6b1f...

  # Show as JSON
  pbctl document get 6b1f... -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	doc, err := client.GetDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, doc)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, doc)
	default:
		return output.SimpleTable(os.Stdout, [][2]string{
			{"ID", doc.ID},
			{"Name", doc.Name},
			{"Kind", doc.Kind},
			{"Size", bytesize.ByteSize(doc.Size).String()},
			{"Version", fmt.Sprintf("%d", doc.Version)},
			{"Created", doc.CreatedAt.Local().Format(time.DateTime)},
			{"Updated", doc.UpdatedAt.Local().Format(time.DateTime)},
		})
	}
}
