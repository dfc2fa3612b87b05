package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/config"
	"github.com/paperbay/paperbay/pkg/controlplane/api"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/metrics"
	"github.com/paperbay/paperbay/pkg/sharing"
	"github.com/spf13/cobra"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the paperbay server",
	Long: `Start the paperbay server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/paperbay/config.yaml.

Examples:
  # Start in background (default)
  paperbay start

  # Start in foreground
  paperbay start --foreground

  # Start with custom config file
  paperbay start --config /etc/paperbay/config.yaml

  # Start with environment variable overrides
  PAPERBAY_LOGGING_LEVEL=DEBUG paperbay start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/paperbay/paperbay.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/paperbay/paperbay.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Initialize metrics before the services that instrument themselves
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Control plane database
	cpStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize control plane store: %w", err)
	}
	logger.Info("Control plane store initialized", "type", cfg.Database.Type)

	// Content store backing document bytes
	contentStore, err := config.CreateContentStore(ctx, cfg.Content)
	if err != nil {
		return fmt.Errorf("failed to initialize content store: %w", err)
	}
	logger.Info("Content store initialized", "type", cfg.Content.Type)

	// Domain services
	ledgerSvc := ledger.NewService(cpStore, contentStore, cfg.Ledger)
	if cfg.Metrics.Enabled {
		ledgerSvc.SetMetrics(metrics.NewLedgerMetrics())
	}
	sharingSvc := sharing.NewService(cpStore)
	editorSvc := editor.NewService(cpStore, ledgerSvc, sharingSvc, cfg.Editor)

	// API server
	apiServer, err := api.NewServer(cfg.API, api.Services{
		Store:   cpStore,
		Ledger:  ledgerSvc,
		Sharing: sharingSvc,
		Editor:  editorSvc,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	logger.Info("API server configured", "port", apiServer.Port())

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Periodically tombstone expired public share links
	go runShareReaper(ctx, sharingSvc)

	// Start server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// startDaemon starts the server as a background daemon process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	pidPath := pidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	// Check if already running
	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("paperbay is already running (PID %d)\nUse 'paperbay stop' to stop the running instance", pid)
					}
				}
			}
		}
		// Stale PID file, remove it
		_ = os.Remove(pidPath)
	}

	logPath := logFile
	if logPath == "" {
		logPath = GetDefaultLogFile()
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	daemon := exec.Command(executable, daemonArgs...)

	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	daemon.Stdout = logFileHandle
	daemon.Stderr = logFileHandle

	// Detach from parent process
	daemon.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := daemon.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFileHandle.Close()

	fmt.Printf("paperbay started in background (PID %d)\n", daemon.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'paperbay stop' to stop the server")
	fmt.Println("Use 'paperbay status' to check server status")

	return nil
}

// runShareReaper tombstones expired public share links on an hourly cadence
// so stale tokens stop resolving even when never dereferenced again.
func runShareReaper(ctx context.Context, svc *sharing.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ReapExpired(ctx)
			if err != nil {
				logger.Warn("Expired share reap failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("Expired public shares tombstoned", "count", n)
			}
		}
	}
}
