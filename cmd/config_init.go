package cmd

import (
	"fmt"

	"github.com/PolarWolf314/conson/internal/configs"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/secrets"
	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	configInitFileName  string
	configInitDirectory string
	configInitSalt      string
	configInitForce     bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitFileName, "file", "", "default parameter file name")
	configInitCmd.Flags().StringVar(&configInitDirectory, "dir", "", "default directory for the parameter file")
	configInitCmd.Flags().StringVar(&configInitSalt, "salt", "", "salt to use (defaults to a random value)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitFileName = ""
	configInitDirectory = ""
	configInitSalt = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the user configuration",
	Long: `Writes the user configuration file with the given defaults.

Without --salt a random salt is generated, so values veiled on this machine
are not protected by the well-known built-in salt alone.

Values veiled before the salt changes can no longer be unveiled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")
		spinner, cleanup := startSpinner("Writing configuration...", configVerbose, configDebug)
		defer cleanup()

		if configs.UserConfigExists() && !configInitForce {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " User configuration already exists at " + ui.Path.Sprint(configs.UserConfigPath()) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("conson config init --force") + " to overwrite it"
			return nil
		}

		settings := configs.DefaultSettings().Merge(configs.Settings{
			FileName:  configInitFileName,
			Directory: configInitDirectory,
			Salt:      configInitSalt,
		})
		if configInitSalt == "" {
			settings.Salt = uuid.NewString()
			ConfigLogger.Debugf("Generated random salt")
		}
		if settings.Directory != "" {
			dir, err := utils.ExpandPath(settings.Directory)
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to resolve directory: %v", err)
			}
			if !utils.IsDir(dir) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Directory " + ui.Path.Sprint(dir) + " does not exist"
				return reported(fmt.Errorf("%w: %s", kerrors.ErrDirectoryNotFound, dir))
			}
		}
		if _, err := secrets.SaltBytes(settings.Salt); err != nil {
			spinner.FinalMSG = formatParamsError(err)
			return reported(err)
		}

		if err := configs.SaveUserConfig(&configs.UserConfig{Store: settings}); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " User configuration written to " + ui.Path.Sprint(configs.UserConfigPath())
		return nil
	},
}
