package secrets

import (
	"reflect"
	"testing"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple uppercase", "DATABASE_URL", true},
		{"lowercase", "api_key", true},
		{"leading underscore", "_PRIVATE", true},
		{"single letter", "A", true},
		{"digits after first", "KEY2", true},
		{"empty", "", false},
		{"leading digit", "1PASSWORD", false},
		{"hyphen", "API-KEY", false},
		{"space", "API KEY", false},
		{"dot", "api.key", false},
		{"reserved prefix", "GITHUB_TOKEN", false},
		{"reserved prefix only", "GITHUB_", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidName(tt.input); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("DATABASE_URL"); err != nil {
		t.Errorf("Expected no error for valid name, got: %v", err)
	}

	if err := ValidateName(""); err == nil {
		t.Error("Expected error for empty name")
	}

	if err := ValidateName("9LIVES"); err == nil {
		t.Error("Expected error for name starting with digit")
	}

	if err := ValidateName("GITHUB_SHA"); err == nil {
		t.Error("Expected error for reserved prefix")
	}
}

func TestPartition(t *testing.T) {
	entries := []Entry{
		{Name: "GOOD", Value: "1"},
		{Name: "GITHUB_BAD", Value: "2"},
		{Name: "ALSO_GOOD", Value: "3"},
		{Name: "1BAD", Value: "4"},
		{Name: "BAD NAME", Value: "5"},
	}

	valid, invalid := Partition(entries)

	wantValid := []Entry{
		{Name: "GOOD", Value: "1"},
		{Name: "ALSO_GOOD", Value: "3"},
	}
	if !reflect.DeepEqual(valid, wantValid) {
		t.Errorf("Expected valid %v, got %v", wantValid, valid)
	}

	wantInvalid := []string{"GITHUB_BAD", "1BAD", "BAD NAME"}
	if !reflect.DeepEqual(invalid, wantInvalid) {
		t.Errorf("Expected invalid %v, got %v", wantInvalid, invalid)
	}
}

func TestPartitionAllValid(t *testing.T) {
	entries := []Entry{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
	}

	valid, invalid := Partition(entries)

	if len(valid) != 2 {
		t.Errorf("Expected 2 valid entries, got %d", len(valid))
	}
	if invalid != nil {
		t.Errorf("Expected no invalid names, got %v", invalid)
	}
}
