package cmd

import (
	"github.com/PolarWolf314/conson/internal/configs"
	"github.com/PolarWolf314/conson/internal/identity"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/PolarWolf314/conson/internal/params"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	fileFlag string
	dirFlag  string
	saltFlag string

	// identityProvider reads the machine UUID. Overridden in tests.
	identityProvider = identity.Default()

	ParamsCmd = &cobra.Command{
		Use:   "params",
		Short: "Manage machine-bound configuration parameters",
		Long: `Creates, veils, unveils and removes named parameters stored in a JSON file.

Veiled values are encrypted with a key derived from this machine's UUID and
a salt, so they can only be unveiled on the machine that veiled them.

The parameter file, its directory and the salt default to the values in
the user configuration (see 'conson config show') and can be overridden
per command with --file, --dir and --salt.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing params command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	ParamsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ParamsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	ParamsCmd.PersistentFlags().StringVar(&fileFlag, "file", "", "parameter file name (default from user config, else config.json)")
	ParamsCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "directory holding the parameter file (default: working directory)")
	ParamsCmd.PersistentFlags().StringVar(&saltFlag, "salt", "", "salt mixed into the veiling key")
}

// resolveSettings merges the user configuration with the command line flags.
func resolveSettings() (configs.Settings, error) {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return configs.Settings{}, err
	}
	settings := userConfig.Store.Merge(configs.Settings{
		FileName:  fileFlag,
		Directory: dirFlag,
		Salt:      saltFlag,
	})
	Logger.Debugf("Resolved settings: file=%s dir=%s default_salt=%t", settings.FileName, settings.Directory, settings.UsesDefaultSalt())
	return settings, nil
}

// openStore returns an empty store configured from the resolved settings.
func openStore() (*params.Store, configs.Settings, error) {
	settings, err := resolveSettings()
	if err != nil {
		return nil, settings, err
	}
	opts, err := settings.StoreOptions()
	if err != nil {
		return nil, settings, err
	}
	opts = append(opts, params.WithIdentity(identityProvider), params.WithLogger(Logger))
	return params.New(opts...), settings, nil
}

// Helper functions for testing

// GetParamsCmd returns the ParamsCmd for testing.
func GetParamsCmd() *cobra.Command {
	return ParamsCmd
}

// SetIdentityProvider replaces the machine identity used by every command.
func SetIdentityProvider(p identity.Provider) {
	identityProvider = p
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	fileFlag = ""
	dirFlag = ""
	saltFlag = ""
	identityProvider = identity.Default()
	resetCreateCommandState()
	resetVeilCommandState()
	resetShowCommandState()
	resetPersistCommandState()
	resetDoctorCommandState()
	resetLogCommandState()
	resetCobraFlagState(ParamsCmd)
}

// resetCobraFlagState clears the Changed marker on every flag of c and its
// subcommands so flags set by one test do not leak into the next.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
