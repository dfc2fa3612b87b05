package commands

import (
	"fmt"

	"github.com/paperbay/paperbay/pkg/config"
	"github.com/paperbay/paperbay/pkg/controlplane/api"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample paperbay configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/paperbay/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  paperbay init

  # Initialize with custom path
  paperbay init --config /etc/paperbay/config.yaml

  # Force overwrite existing config
  paperbay init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: paperbay start")
	fmt.Printf("  3. Or specify custom config: paperbay start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random JWT secret has been generated for development use.")
	fmt.Println("  For production, share the identity provider's secret via an environment variable:")
	fmt.Printf("    export %s=$(openssl rand -hex 32)\n", api.EnvJWTSecret)

	return nil
}
