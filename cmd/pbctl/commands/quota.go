package commands

import (
	"fmt"
	"os"

	"github.com/paperbay/paperbay/cmd/pbctl/cmdutil"
	"github.com/paperbay/paperbay/internal/bytesize"
	"github.com/paperbay/paperbay/internal/cli/output"
	"github.com/spf13/cobra"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show storage quota usage",
	Long: `Display your storage quota: bytes used, the configured limit, and
the remaining headroom.

Examples:
  # Show quota
  pbctl quota

  # Output as JSON
  pbctl quota -o json`,
	RunE: runQuota,
}

func runQuota(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	quota, err := client.GetQuota()
	if err != nil {
		return fmt.Errorf("failed to get quota: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, quota)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, quota)
	default:
		percent := 0.0
		if quota.Limit > 0 {
			percent = float64(quota.Used) / float64(quota.Limit) * 100
		}
		fmt.Printf("Used:      %s (%.1f%%)\n", bytesize.ByteSize(quota.Used), percent)
		fmt.Printf("Limit:     %s\n", bytesize.ByteSize(quota.Limit))
		fmt.Printf("Available: %s\n", bytesize.ByteSize(quota.Available))
	}

	return nil
}
