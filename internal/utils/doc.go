// Package utils provides shared utility functions for the Kōwhai application.
//
// # I/O Utilities
//
// Functions for getting a secret value into the process without showing it:
//   - StdinIsPiped: detects piped input
//   - ReadStdin: reads a piped secret value
//   - ReadSecretPrompt: prompts on a terminal with echo disabled
//
// # String Utilities
//
// Functions for formatting lists in command output:
//   - FormatPaths: formats file paths for human-readable output
//   - FormatNames: formats secret names for human-readable output
package utils
