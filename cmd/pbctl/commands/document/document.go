// Package document implements document management subcommands for pbctl.
package document

import (
	"github.com/spf13/cobra"
)

// Cmd is the document subcommand.
var Cmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc", "documents"},
	Short:   "Manage documents",
	Long: `Upload, download, and manage documents stored on the server.

Subcommands:
  list      List your documents
  get       Show a document's metadata
  upload    Upload a new document
  download  Download a document's content
  replace   Upload a new version of a document
  rename    Rename a document
  delete    Delete a document`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(uploadCmd)
	Cmd.AddCommand(downloadCmd)
	Cmd.AddCommand(replaceCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}
