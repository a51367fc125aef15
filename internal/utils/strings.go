package utils

import (
	"strings"

	"github.com/PolarWolf314/kowhai/internal/ui"
)

// FormatPaths formats a slice of paths into a readable indented list.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatNames formats a slice of secret names into a readable indented list.
func FormatNames(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Code.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}
