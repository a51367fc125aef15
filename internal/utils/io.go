package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinIsPiped reports whether stdin has piped data rather than being
// connected to a terminal.
func StdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// ReadStdin reads all content from stdin, with a single trailing newline
// stripped so `echo value | kowhai ...` does what the user means.
// Returns an error if stdin is empty, is a terminal, or cannot be read.
func ReadStdin() (string, error) {
	if !StdinIsPiped() {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the secret value to this command)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("stdin is empty")
	}

	return strings.TrimSuffix(string(data), "\n"), nil
}
