// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the real commands.
package shared

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/conson/cmd"
	"github.com/PolarWolf314/conson/internal/configs"
	"github.com/PolarWolf314/conson/internal/identity"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/PolarWolf314/conson/internal/params"
	"github.com/spf13/cobra"
)

// MachineUUID is the machine identity every integration test runs under.
const MachineUUID = "4C4C4544-0042-3510-8052-B4C04F565931"

// OtherMachineUUID stands in for a second machine.
const OtherMachineUUID = "03000200-0400-0500-0006-000700080009"

// SetupTestEnvironment sets up the test environment with temporary directories.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserConsonSettings = originalUserSettings
		cmd.ResetGlobalState()
		cmd.ResetConfigState()
	})

	// Override user settings to use temp directory
	configs.UserConsonSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		Username:        "testuser",
	}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance running args on the machine
// identified by machineUUID.
func CreateTestCLI(args []string, machineUUID string, verboseFlag, debugFlag bool) *cobra.Command {
	// Flags keep their values between executions of the same command tree.
	cmd.ResetGlobalState()
	cmd.ResetConfigState()
	cmd.SetIdentityProvider(identity.Static(machineUUID))
	cmd.SetDoctorExitFunc(func(int) {})

	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := &cobra.Command{
		Use:           "conson",
		Short:         "conson - machine-bound configuration parameters.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(cmd.GetParamsCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
	rootCmd.SetArgs(args)

	if err := cmd.GetParamsCmd().PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := cmd.GetParamsCmd().PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// Run executes args on the default test machine and returns the combined output.
func Run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return CaptureOutput(func() error {
		return CreateTestCLI(args, MachineUUID, false, false).Execute()
	})
}

// LoadParams reads a parameter file the way a library user on the default
// test machine would.
func LoadParams(t *testing.T, dir, fileName, salt string) *params.Store {
	t.Helper()
	s := params.New(
		params.WithDirectory(dir),
		params.WithFileName(fileName),
		params.WithSalt(salt),
		params.WithIdentity(identity.Static(MachineUUID)),
	)
	if err := s.Load(); err != nil {
		t.Fatalf("Failed to load %s: %v", s.File(), err)
	}
	return s
}
