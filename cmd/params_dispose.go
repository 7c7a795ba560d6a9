package cmd

import (
	"context"

	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	ParamsCmd.AddCommand(disposeCmd)
}

var disposeCmd = &cobra.Command{
	Use:   "dispose NAME",
	Short: "Remove a parameter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting dispose command")
		spinner, cleanup := startSpinner("Removing parameter...", verbose, debug)
		defer cleanup()

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		result, err := workflows.Dispose(context.Background(), store, workflows.DisposeOptions{Name: args[0]})
		if err != nil {
			spinner.FinalMSG = formatParamsError(err)
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(result.Name) + " from " + ui.Path.Sprint(result.Path)
		return nil
	},
}
