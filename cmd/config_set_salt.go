package cmd

import (
	"github.com/PolarWolf314/conson/internal/configs"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/secrets"
	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/utils"

	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetSaltCmd)
}

var configSetSaltCmd = &cobra.Command{
	Use:   "set-salt [SALT]",
	Short: "Change the salt used to veil values",
	Long: `Stores a new salt in the user configuration. Without an argument the
salt is read from the terminal without echo.

Values veiled with the previous salt can no longer be unveiled. Unveil them
first and veil them again afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config set-salt command")

		var salt string
		if len(args) == 1 {
			salt = args[0]
		} else {
			input, err := utils.ReadPassphrase("New salt: ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to read salt: %v", err)
			}
			salt = string(input)
		}

		spinner, cleanup := startSpinner("Updating salt...", configVerbose, configDebug)
		defer cleanup()

		if salt == "" {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Salt must not be empty"
			return reported(kerrors.ErrEmptySalt)
		}
		if _, err := secrets.SaltBytes(salt); err != nil {
			spinner.FinalMSG = formatParamsError(err)
			return reported(err)
		}

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}
		changed := userConfig.Store.Salt != salt
		userConfig.Store.Salt = salt

		if err := configs.SaveUserConfig(userConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		msg := ui.Success.Sprint("✓") + " Salt updated in " + ui.Path.Sprint(configs.UserConfigPath())
		if changed {
			msg += "\n" + ui.Warning.Sprint("⚠") + " Values veiled with the previous salt can no longer be unveiled"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
