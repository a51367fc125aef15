// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands the way a user would.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/kowhai/internal/configs"
	logger "github.com/PolarWolf314/kowhai/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment redirects the user config and data directories
// into temporary directories and restores everything on cleanup.
func setupTestEnvironment(t *testing.T, tempUserDir string) {
	t.Helper()

	originalSettings := configs.UserKowhaiSettings
	t.Cleanup(func() {
		configs.UserKowhaiSettings = originalSettings
		ResetGlobalState()
	})

	configs.UserKowhaiSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
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

// createTestCLI creates a complete CLI instance for testing with the
// secrets subcommand arguments and flags a user would type.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command (needed for the real command implementations)
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "kowhai",
		Short: "Kowhai - A CLI for pushing environment secrets to GitHub Actions.",
	}

	// Use the actual SecretsCmd but reset its state
	rootCmd.AddCommand(SecretsCmd)

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		SecretsCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		SecretsCmd.SetErr(stderr)
	}

	// Set args to run the specified subcommand
	rootCmd.SetArgs(append([]string{"secrets"}, args...))

	// Set the flags on the secrets command
	if err := SecretsCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := SecretsCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// runSecretsCommand runs `kowhai secrets <args...>` and returns the
// combined output.
func runSecretsCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		cli := createTestCLI(args, nil, nil, false, false)
		return cli.Execute()
	})
}
