package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/conson/internal/audit"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/PolarWolf314/conson/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logName      string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by OS user")
	logCmd.Flags().StringVar(&logName, "name", "", "filter by parameter name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	ParamsCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logName = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log kept next to the parameter file.

Shows who created, veiled, unveiled or removed which parameter and when.
Values are never recorded.

Examples:
  conson params log                          # View full log
  conson params log -n 10                    # Last 10 entries
  conson params log --reverse                # Most recent first
  conson params log --name db_password       # One parameter
  conson params log --operation veil,unveil  # Filter by operation
  conson params log --since 2024-01-01       # Filter by date
  conson params log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	store, _, err := openStore()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to open parameter store: %v", err)
	}

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Directory:  store.Directory(),
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Name:       logName,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return reported(err)
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once a parameter is created."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrNoFilesFound)
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-16s  %-8s  %s\n", datetime, e.User, e.Operation, details)
	}
}
