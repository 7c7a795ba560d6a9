package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/PolarWolf314/conson/internal/params"
	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/utils"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	showJSON   bool
	showUnveil bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the matching parameters as a JSON object")
	showCmd.Flags().BoolVarP(&showUnveil, "unveil", "u", false, "unveil tokens that decrypt on this machine")
	ParamsCmd.AddCommand(showCmd)
}

// resetShowCommandState resets the show command's global state for testing.
func resetShowCommandState() {
	showJSON = false
	showUnveil = false
}

var showCmd = &cobra.Command{
	Use:   "show [PATTERN...]",
	Short: "List parameters",
	Long: `Lists the parameters in the parameter file, optionally filtered by
glob patterns matched against their names.

Tokens are abbreviated unless --json is given. With --unveil, tokens that
decrypt on this machine are shown in plaintext.

Examples:
  conson params show
  conson params show 'db_*' port
  conson params show --unveil --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")
		Logger.Debugf("Patterns: %v, json=%t, unveil=%t", args, showJSON, showUnveil)

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		result, err := workflows.Show(context.Background(), store, workflows.ShowOptions{
			Patterns: args,
			Unveil:   showUnveil,
		})
		if err != nil {
			fmt.Println(formatParamsError(err))
			return reported(err)
		}

		if showJSON {
			return outputShowJSON(result.Parameters)
		}

		if len(result.Parameters) == 0 {
			switch {
			case !result.Exists:
				fmt.Println(ui.Info.Sprint("ℹ") + " No parameter file at " + ui.Path.Sprint(result.Path))
			case result.Total == 0:
				fmt.Println("No parameters found.")
			default:
				fmt.Println("No parameters found matching the patterns.")
			}
			return nil
		}

		outputShowText(result)
		return nil
	},
}

func outputShowJSON(shown []workflows.ShownParameter) error {
	out := params.New(params.WithIdentity(identityProvider))
	for _, p := range shown {
		out.Set(p.Name, p.Value)
	}
	data, err := out.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal parameters to JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "    "); err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}

func outputShowText(result *workflows.ShowResult) {
	fmt.Println(ui.Path.Sprint(result.Path) + ":")
	for _, p := range result.Parameters {
		if !p.Value.IsList() {
			fmt.Printf("  %s = %s\n", ui.Highlight.Sprint(p.Name), formatShownItem(p, 0, p.Value.String()))
			continue
		}
		fmt.Printf("  %s\n", ui.Highlight.Sprint(p.Name))
		for i, item := range p.Value.Items() {
			fmt.Printf("    [%d] %s\n", i, formatShownItem(p, i, item))
		}
	}
}

func formatShownItem(p workflows.ShownParameter, index int, item string) string {
	switch {
	case slices.Contains(p.Veiled, index):
		return ui.Token.Sprint(utils.Abbreviate(item, 24))
	case slices.Contains(p.Unveiled, index):
		return item + " " + ui.Muted.Sprint("unveiled")
	default:
		return item
	}
}
