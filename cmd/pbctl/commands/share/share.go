// Package share implements sharing subcommands for pbctl.
package share

import (
	"github.com/spf13/cobra"
)

// Cmd is the share subcommand.
var Cmd = &cobra.Command{
	Use:     "share",
	Aliases: []string{"shares"},
	Short:   "Manage document shares",
	Long: `Share documents with friends or through public links, and manage
existing shares.

Friend shares give another user read access to a document. Public links
let anyone holding the link read the document, optionally until an
expiry time.

Subcommands:
  friend    Share a document with a friend
  link      Create a public share link
  list      List shares you have granted
  received  List shares granted to you
  revoke    Revoke a share`,
}

func init() {
	Cmd.AddCommand(friendCmd)
	Cmd.AddCommand(linkCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(receivedCmd)
	Cmd.AddCommand(revokeCmd)
}
