package secrets

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseEnvBasic(t *testing.T) {
	input := `DATABASE_URL=postgres://localhost/dev
API_KEY=abc123
`
	entries, err := ParseEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	want := []Entry{
		{Name: "DATABASE_URL", Value: "postgres://localhost/dev"},
		{Name: "API_KEY", Value: "abc123"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Expected %v, got %v", want, entries)
	}
}

func TestParseEnvCommentsAndBlanks(t *testing.T) {
	input := `# leading comment

FIRST=1
  # indented comment
SECOND=2 # inline comment
`
	entries, err := ParseEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	want := []Entry{
		{Name: "FIRST", Value: "1"},
		{Name: "SECOND", Value: "2"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Expected %v, got %v", want, entries)
	}
}

func TestParseEnvExportPrefix(t *testing.T) {
	entries, err := ParseEnv(strings.NewReader("export TOKEN=xyz\n"))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	if len(entries) != 1 || entries[0].Name != "TOKEN" || entries[0].Value != "xyz" {
		t.Errorf("Expected TOKEN=xyz, got %v", entries)
	}
}

func TestParseEnvQuotedValues(t *testing.T) {
	input := `DOUBLE="hello world"
SINGLE='literal $VALUE'
ESCAPED="line1\nline2"
QUOTED_HASH="value # not a comment"
TRAILING="quoted" # comment after quote
SINGLE_BACKSLASH='a\nb'
`
	entries, err := ParseEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	want := []Entry{
		{Name: "DOUBLE", Value: "hello world"},
		{Name: "SINGLE", Value: "literal $VALUE"},
		{Name: "ESCAPED", Value: "line1\nline2"},
		{Name: "QUOTED_HASH", Value: "value # not a comment"},
		{Name: "TRAILING", Value: "quoted"},
		{Name: "SINGLE_BACKSLASH", Value: `a\nb`},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Expected %v, got %v", want, entries)
	}
}

func TestParseEnvEmptyValue(t *testing.T) {
	entries, err := ParseEnv(strings.NewReader("EMPTY=\n"))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	if len(entries) != 1 || entries[0].Value != "" {
		t.Errorf("Expected empty value, got %v", entries)
	}
}

func TestParseEnvDuplicateKeepsPosition(t *testing.T) {
	input := `FIRST=a
SECOND=b
FIRST=c
`
	entries, err := ParseEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}

	// The later assignment wins but the original position is kept.
	want := []Entry{
		{Name: "FIRST", Value: "c"},
		{Name: "SECOND", Value: "b"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Expected %v, got %v", want, entries)
	}
}

func TestMergeEntries(t *testing.T) {
	base := []Entry{
		{Name: "SHARED", Value: "base"},
		{Name: "BASE_ONLY", Value: "1"},
	}
	override := []Entry{
		{Name: "SHARED", Value: "override"},
		{Name: "EXTRA", Value: "2"},
	}

	merged := MergeEntries(base, override)

	want := []Entry{
		{Name: "SHARED", Value: "override"},
		{Name: "BASE_ONLY", Value: "1"},
		{Name: "EXTRA", Value: "2"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Expected %v, got %v", want, merged)
	}
}

func TestParseEnvMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no equals", "JUST_A_WORD\n"},
		{"missing name", "=value\n"},
		{"unterminated quote", `KEY="oops` + "\n"},
		{"text after quote", `KEY="done"extra` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEnv(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
		})
	}
}

func TestParseEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")
	writeTestFile(t, path, "NAME=value\n")

	entries, err := ParseEnvFile(path)
	if err != nil {
		t.Fatalf("ParseEnvFile failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "NAME" {
		t.Errorf("Expected NAME entry, got %v", entries)
	}
}

func TestParseEnvFileMissing(t *testing.T) {
	if _, err := ParseEnvFile(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("Expected error for missing file")
	}
}
