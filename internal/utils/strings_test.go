package utils

import (
	"strings"
	"testing"
)

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatPaths([]string{".env", "services/api/.env"})

	if !strings.Contains(got, "    - .env\n") {
		t.Errorf("Expected indented .env entry, got %q", got)
	}
	if !strings.Contains(got, "services/api/.env") {
		t.Errorf("Expected second path, got %q", got)
	}
	if !strings.HasPrefix(got, "\n") {
		t.Errorf("Expected leading newline, got %q", got)
	}
}

func TestFormatNames(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatNames([]string{"API_KEY", "DATABASE_URL"})

	if !strings.Contains(got, "API_KEY") || !strings.Contains(got, "DATABASE_URL") {
		t.Errorf("Expected both names, got %q", got)
	}
	if strings.Count(got, "    - ") != 2 {
		t.Errorf("Expected 2 list entries, got %q", got)
	}
}
