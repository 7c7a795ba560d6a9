package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/utils"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	createPrompt bool
	createVeil   []int
)

func init() {
	createCmd.Flags().BoolVarP(&createPrompt, "prompt", "p", false, "read one more value from the terminal without echo")
	createCmd.Flags().IntSliceVar(&createVeil, "veil", nil, "veil the value at this index after creating (repeatable)")
	ParamsCmd.AddCommand(createCmd)
}

// resetCreateCommandState resets the create command's global state for testing.
func resetCreateCommandState() {
	createPrompt = false
	createVeil = nil
}

var createCmd = &cobra.Command{
	Use:   "create NAME [VALUE...]",
	Short: "Create or replace a parameter",
	Long: `Stores a parameter in the parameter file.

A single value is stored as a string, several values as a list in the
order given. An existing parameter with the same name is replaced.

Examples:
  conson params create db_host localhost
  conson params create pc1 admin --prompt --veil 1
  conson params create ports 80 443`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create command")
		name, values := args[0], args[1:]

		if createPrompt {
			secret, err := utils.ReadPassphrase(fmt.Sprintf("Value for %s: ", name))
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read value: %v", err)
			}
			values = append(values, string(secret))
		}

		spinner, cleanup := startSpinner("Creating parameter...", verbose, debug)
		defer cleanup()

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		result, err := workflows.Create(context.Background(), store, workflows.CreateOptions{
			Name:        name,
			Values:      values,
			VeilIndexes: createVeil,
		})
		if err != nil {
			spinner.FinalMSG = formatParamsError(err)
			return reported(err)
		}

		verb := "Created"
		if result.Replaced {
			verb = "Replaced"
		}
		msg := ui.Success.Sprint("✓") + " " + verb + " " + ui.Highlight.Sprint(result.Name) + " in " + ui.Path.Sprint(result.Path)
		if len(result.Veiled) > 0 {
			msg += " " + ui.Muted.Sprintf("veiled %v", result.Veiled)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
