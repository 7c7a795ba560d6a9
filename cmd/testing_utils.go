// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and building a CLI around the real commands.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/PolarWolf314/conson/internal/configs"
	"github.com/PolarWolf314/conson/internal/identity"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/spf13/cobra"
)

// testMachineUUID is the fixed machine identity used by command tests.
const testMachineUUID = "4C4C4544-0042-3510-8052-B4C04F565931"

// setupTestEnvironment changes into a fresh working directory, points the
// user configuration at a temporary directory and fixes the machine identity.
// It returns the working directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalConfigsPath := configs.UserConsonSettings.UserConfigsPath

	tempDir := t.TempDir()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	configs.UserConsonSettings.UserConfigsPath = t.TempDir()

	ResetGlobalState()
	ResetConfigState()
	SetIdentityProvider(identity.Static(testMachineUUID))
	SetDoctorExitFunc(func(int) {})

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserConsonSettings.UserConfigsPath = originalConfigsPath
		ResetGlobalState()
		ResetConfigState()
	})

	// The working directory may be reached through a symlink (macOS /var).
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

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

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance running the given arguments.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{}
	ConfigLogger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "conson",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(ParamsCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI runs the CLI with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	// Flags keep their values between executions of the same command tree.
	ResetGlobalState()
	ResetConfigState()
	SetIdentityProvider(identity.Static(testMachineUUID))
	SetDoctorExitFunc(func(int) {})
	return output, err
}
