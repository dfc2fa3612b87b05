package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/cli/credentials"
	"github.com/paperbay/paperbay/internal/cli/output"
	"github.com/paperbay/paperbay/internal/cli/timeutil"
	"github.com/paperbay/paperbay/pkg/apiclient"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection and server status",
	Long: `Display the current context, login state, and server health.

Examples:
  # Show status
  pbctl status

  # Output as JSON
  pbctl status -o json`,
	RunE: runStatus,
}

// ConnectionStatus represents the client and server status for output.
type ConnectionStatus struct {
	Context   string `json:"context,omitempty" yaml:"context,omitempty"`
	ServerURL string `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
	Reachable bool   `json:"reachable" yaml:"reachable"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	status := ConnectionStatus{
		Context: store.GetCurrentContextName(),
	}

	if ctx, err := store.GetCurrentContext(); err == nil {
		status.ServerURL = ctx.ServerURL
		status.Username = ctx.Username
		status.LoggedIn = ctx.AccessToken != "" && !ctx.IsExpired()
	}
	if cmdutil.Flags.ServerURL != "" {
		status.ServerURL = cmdutil.Flags.ServerURL
	}

	if status.ServerURL != "" {
		health, err := apiclient.New(status.ServerURL).Health()
		if err == nil {
			status.Reachable = health.Status == "ok"
			status.StartedAt = health.StartedAt.Format(time.RFC3339)
			status.Uptime = health.Uptime
		}
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		if status.Context == "" {
			fmt.Println("Not logged in. Run 'pbctl login --server <url>' first.")
			return nil
		}
		fmt.Printf("Context:   %s\n", status.Context)
		fmt.Printf("Server:    %s\n", cmdutil.EmptyOr(status.ServerURL, "-"))
		fmt.Printf("User:      %s\n", cmdutil.EmptyOr(status.Username, "-"))
		fmt.Printf("Logged in: %s\n", cmdutil.BoolToYesNo(status.LoggedIn))
		fmt.Printf("Reachable: %s\n", cmdutil.BoolToYesNo(status.Reachable))
		if status.Uptime != "" {
			fmt.Printf("Uptime:    %s\n", timeutil.FormatUptime(status.Uptime))
		}
	}

	return nil
}
