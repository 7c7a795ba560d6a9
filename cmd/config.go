package cmd

import (
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage conson user configuration",
		Long: `Provides commands for managing the user defaults applied to every
params command: the parameter file name, its directory and the salt.

Examples:
  # Write the user configuration with a random salt
  conson config init

  # Show the effective configuration
  conson config show

  # Change the salt
  conson config set-salt`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
