package secrets

import (
	"fmt"
	"regexp"
	"strings"
)

// secretNameRegex matches names GitHub accepts for Actions secrets:
// letters, digits, and underscores, not starting with a digit.
var secretNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedPrefix is rejected by GitHub for user-defined secrets.
const reservedPrefix = "GITHUB_"

// IsValidName checks if a name is usable as a GitHub Actions secret name.
func IsValidName(name string) bool {
	if !secretNameRegex.MatchString(name) {
		return false
	}
	return !strings.HasPrefix(name, reservedPrefix)
}

// ValidateName explains why a name is not usable as a GitHub Actions
// secret name. It returns nil for valid names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if !secretNameRegex.MatchString(name) {
		return fmt.Errorf("name %q must start with a letter or underscore and contain only letters, digits, and underscores", name)
	}
	if strings.HasPrefix(name, reservedPrefix) {
		return fmt.Errorf("name %q uses the reserved %s prefix", name, reservedPrefix)
	}
	return nil
}

// Partition splits entries into those with uploadable names and the
// names GitHub would reject. Both slices preserve input order.
func Partition(entries []Entry) (valid []Entry, invalid []string) {
	for _, entry := range entries {
		if IsValidName(entry.Name) {
			valid = append(valid, entry)
		} else {
			invalid = append(invalid, entry.Name)
		}
	}
	return valid, invalid
}
