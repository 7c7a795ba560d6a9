package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/conson/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conson",
	Short: "conson - machine-bound configuration parameters.",
	Long: `conson stores named configuration parameters in a JSON file and veils
sensitive values with a key derived from this machine's UUID and a salt.

Veiled values can only be unveiled on the machine that veiled them.

Usage:
  conson <command> [flags]

Available Commands:
  params     Create, veil, unveil and list parameters
  config     Manage the user defaults

Run 'conson help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		figure.NewColorFigure("conson", "alligator2", "cyan", true).Print()
		fmt.Println()
		fmt.Println("Run 'conson --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.ParamsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
