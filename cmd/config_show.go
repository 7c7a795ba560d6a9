package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/conson/internal/configs"
	"github.com/PolarWolf314/conson/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

type configShowOutput struct {
	ConfigPath  string `json:"config_path"`
	Exists      bool   `json:"exists"`
	FileName    string `json:"file_name"`
	Directory   string `json:"directory"`
	DefaultSalt bool   `json:"default_salt"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the user configuration merged with the built-in defaults.
The salt itself is never printed.

Examples:
  conson config show
  conson config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		dir, err := userConfig.Store.ResolvedDirectory()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to resolve directory: %v", err)
		}

		out := configShowOutput{
			ConfigPath:  configs.UserConfigPath(),
			Exists:      configs.UserConfigExists(),
			FileName:    userConfig.Store.FileName,
			Directory:   dir,
			DefaultSalt: userConfig.Store.UsesDefaultSalt(),
		}

		if configShowJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		source := ui.Path.Sprint(out.ConfigPath)
		if !out.Exists {
			source = ui.Muted.Sprint("defaults, no config file")
		}
		fmt.Println(ui.Info.Sprint("User Configuration") + " " + source + ":")
		fmt.Println()
		fmt.Printf("  %-11s %s\n", "File:", ui.Highlight.Sprint(out.FileName))
		fmt.Printf("  %-11s %s\n", "Directory:", ui.Path.Sprint(out.Directory))
		if out.DefaultSalt {
			fmt.Printf("  %-11s %s\n", "Salt:", ui.Warning.Sprint("built-in"))
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("conson config init") + " or " + ui.Code.Sprint("conson config set-salt") + " to set your own salt")
		} else {
			fmt.Printf("  %-11s %s\n", "Salt:", ui.Success.Sprint("custom"))
		}
		return nil
	},
}
