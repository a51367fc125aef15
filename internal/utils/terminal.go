package utils

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadSecretPrompt prompts the user for a secret value without echoing
// the input, so the value never appears on screen or in shell history.
// Returns an error if stdin is not a terminal.
func ReadSecretPrompt(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for a value: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}

	return string(value), nil
}
