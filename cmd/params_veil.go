package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/utils"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	veilIndex int
	veilOnce  bool
)

func init() {
	veilCmd.Flags().IntVarP(&veilIndex, "index", "i", 0, "list element to veil (ignored for single values)")
	veilCmd.Flags().BoolVar(&veilOnce, "once", false, "refuse to veil a value that is already veiled")
	ParamsCmd.AddCommand(veilCmd)
	ParamsCmd.AddCommand(unveilCmd)
}

// resetVeilCommandState resets the veil command's global state for testing.
func resetVeilCommandState() {
	veilIndex = 0
	veilOnce = false
}

var veilCmd = &cobra.Command{
	Use:   "veil NAME",
	Short: "Encrypt a stored value with this machine's key",
	Long: `Replaces a stored value with a token only this machine can unveil.

For a list, --index selects the element; the other elements are kept.
Veiling a value twice encrypts the token again unless --once is given.

Examples:
  conson params veil api_key
  conson params veil pc1 --index 1 --once`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting veil command")
		spinner, cleanup := startSpinner("Veiling value...", verbose, debug)
		defer cleanup()

		store, settings, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}
		if settings.UsesDefaultSalt() {
			Logger.WarnfAlways("Using the built-in salt; set your own with 'conson config set-salt'")
		}

		result, err := workflows.Veil(context.Background(), store, workflows.VeilOptions{
			Name:  args[0],
			Index: veilIndex,
			Once:  veilOnce,
		})
		if err != nil {
			spinner.FinalMSG = formatParamsError(err)
			return reported(err)
		}

		target := result.Name
		if result.Index >= 0 {
			target = fmt.Sprintf("%s[%d]", result.Name, result.Index)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Veiled " + ui.Highlight.Sprint(target) + " in " + ui.Path.Sprint(result.Path)
		return nil
	},
}

var unveilCmd = &cobra.Command{
	Use:   "unveil TOKEN|-",
	Short: "Decrypt a token veiled on this machine",
	Long: `Prints the plaintext of a token veiled on this machine with the
current salt. Use - to read the token from stdin.

Examples:
  conson params unveil 6741414141414267...
  jq -r .api_key config.json | conson params unveil -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unveil command")

		token := args[0]
		if token == "-" {
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read token: %v", err)
			}
			token = string(data)
		}

		store, _, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
		}

		result, err := workflows.Unveil(context.Background(), store, workflows.UnveilOptions{Token: token})
		if err != nil {
			fmt.Println(formatParamsError(err))
			return reported(err)
		}

		Logger.Debugf("Unveiled token %s", utils.Abbreviate(strings.TrimSpace(token), 20))
		fmt.Println(result.Value)
		return nil
	},
}
