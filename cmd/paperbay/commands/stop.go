package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	stopPidFile string
	stopTimeout time.Duration
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the paperbay server",
	Long: `Stop a paperbay server running in daemon mode.

Sends SIGTERM to the process recorded in the PID file and waits for it
to exit. If the process does not exit within the timeout, SIGKILL is sent.

Examples:
  # Stop the server
  paperbay stop

  # Stop with a custom PID file
  paperbay stop --pid-file /run/paperbay.pid`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/paperbay/paperbay.pid)")
	stopCmd.Flags().DurationVar(&stopTimeout, "timeout", 30*time.Second, "Time to wait for graceful shutdown before SIGKILL")
}

func runStop(cmd *cobra.Command, args []string) error {
	pidPath := stopPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	pidData, err := os.ReadFile(pidPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("paperbay is not running (no PID file at %s)", pidPath)
		}
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(pidData)))
	if err != nil {
		return fmt.Errorf("invalid PID file %s: %w", pidPath, err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	// Check the process is actually alive before signalling
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = os.Remove(pidPath)
		return fmt.Errorf("paperbay is not running (stale PID file removed)")
	}

	fmt.Printf("Stopping paperbay (PID %d)...\n", pid)
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	// Poll for exit
	deadline := time.Now().Add(stopTimeout)
	for time.Now().Before(deadline) {
		if err := process.Signal(syscall.Signal(0)); err != nil {
			fmt.Println("paperbay stopped")
			_ = os.Remove(pidPath)
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("Graceful shutdown timed out, sending SIGKILL")
	if err := process.Signal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to send SIGKILL: %w", err)
	}
	_ = os.Remove(pidPath)
	return nil
}
