package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

var saveTo string

func init() {
	saveCmd.Flags().StringVar(&saveTo, "to", "", "write to this file name in the same directory instead")
	ParamsCmd.AddCommand(saveCmd)
	ParamsCmd.AddCommand(loadCmd)
}

// resetPersistCommandState resets the save command's global state for testing.
func resetPersistCommandState() {
	saveTo = ""
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Read the parameter file and report its state",
	Long: `Reads the parameter file and reports whether it could be loaded.

Load never fails: an unreadable or malformed file is reported in the status
line and the exit code stays 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting load command")

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		result, _ := workflows.Load(context.Background(), store, workflows.LoadOptions{
			Recover: true,
			Logger:  Logger,
		})
		fmt.Println(formatLoadStatus(result))
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the parameter file in canonical form",
	Long: `Loads the parameter file and writes it back with four space indentation.
Use --to to write a copy under another file name.

A file that cannot be loaded is left untouched. Save never fails: problems
are reported in the status line and the exit code stays 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting save command")

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		loaded, _ := workflows.Load(context.Background(), store, workflows.LoadOptions{
			Recover: true,
			Logger:  Logger,
		})
		if !loaded.OK() {
			fmt.Println(formatLoadStatus(loaded))
			return nil
		}

		if saveTo != "" {
			store.SetFile(saveTo, store.Directory())
		}

		result, _ := workflows.Save(context.Background(), store, workflows.SaveOptions{
			Recover: true,
			Logger:  Logger,
		})
		if !result.OK() {
			fmt.Println(ui.Error.Sprint("✗") + " Parameters not saved: " + result.Err.Error())
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Saved %d parameters to ", result.Parameters) + ui.Path.Sprint(result.Path))
		return nil
	},
}

func formatLoadStatus(result *workflows.LoadResult) string {
	if !result.OK() {
		return ui.Error.Sprint("✗") + " Parameters not loaded: " + result.Err.Error()
	}
	return ui.Success.Sprint("✓") + fmt.Sprintf(" Loaded %d parameters from ", result.Parameters) + ui.Path.Sprint(result.Path)
}
