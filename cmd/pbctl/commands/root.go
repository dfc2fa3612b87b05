// Package commands implements the CLI commands for the pbctl client.
package commands

import (
	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	ctxcmd "github.com/paperbay/paperbay/cmd/pbctl/commands/context"
	doccmd "github.com/paperbay/paperbay/cmd/pbctl/commands/document"
	friendcmd "github.com/paperbay/paperbay/cmd/pbctl/commands/friend"
	sharecmd "github.com/paperbay/paperbay/cmd/pbctl/commands/share"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pbctl",
	Short: "paperbay control - document management client",
	Long: `pbctl is the command-line client for a paperbay server.

Use this tool to upload, download and manage documents, share them with
friends or through public links, and inspect your storage quota.

Use "pbctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync flags to cmdutil.Flags for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides stored credential)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(quotaCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(doccmd.Cmd)
	rootCmd.AddCommand(sharecmd.Cmd)
	rootCmd.AddCommand(friendcmd.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
