package document

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/bytesize"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	Long: `List all documents you own.

Examples:
  # List documents as table
  pbctl document list

  # List as JSON
  pbctl document list -o json`,
	RunE: runList,
}

// DocumentList is a list of documents for table rendering.
type DocumentList []apiclient.Document

// Headers implements TableRenderer.
func (dl DocumentList) Headers() []string {
	return []string{"ID", "NAME", "KIND", "SIZE", "VERSION", "UPDATED"}
}

// Rows implements TableRenderer.
func (dl DocumentList) Rows() [][]string {
	rows := make([][]string, 0, len(dl))
	for _, d := range dl {
		rows = append(rows, []string{
			d.ID,
			d.Name,
			d.Kind,
			bytesize.ByteSize(d.Size).String(),
			strconv.FormatInt(d.Version, 10),
			d.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	docs, err := client.ListDocuments()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, docs, len(docs) == 0, "No documents. Use 'pbctl document upload <file>' to add one.", DocumentList(docs))
}
