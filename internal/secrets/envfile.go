package secrets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one name=value assignment from an environment file.
type Entry struct {
	Name  string
	Value string
}

// ParseEnvFile reads a dotenv-style file and returns its entries in the
// order they first appear. A later assignment to the same name replaces
// the earlier value but keeps the original position.
func ParseEnvFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	entries, err := ParseEnv(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

// ParseEnv parses dotenv-style content: KEY=VALUE lines, # comments,
// optional export prefixes, and single- or double-quoted values.
func ParseEnv(r io.Reader) ([]Entry, error) {
	var entries []Entry
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		name, rawValue, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: not a KEY=VALUE assignment", lineNo)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: missing variable name", lineNo)
		}

		value, err := parseValue(strings.TrimSpace(rawValue))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if i, ok := index[name]; ok {
			entries[i].Value = value
			continue
		}
		index[name] = len(entries)
		entries = append(entries, Entry{Name: name, Value: value})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return entries, nil
}

// MergeEntries combines entry lists in order. A later assignment to the
// same name replaces the earlier value but keeps its original position,
// mirroring how a single file with duplicates parses.
func MergeEntries(lists ...[]Entry) []Entry {
	var merged []Entry
	index := make(map[string]int)

	for _, list := range lists {
		for _, e := range list {
			if i, ok := index[e.Name]; ok {
				merged[i].Value = e.Value
				continue
			}
			index[e.Name] = len(merged)
			merged = append(merged, e)
		}
	}

	return merged
}

func parseValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	switch raw[0] {
	case '"', '\'':
		quote := raw[0]
		end := findClosingQuote(raw, quote)
		if end < 0 {
			return "", fmt.Errorf("unterminated quoted value")
		}
		rest := strings.TrimSpace(raw[end+1:])
		if rest != "" && !strings.HasPrefix(rest, "#") {
			return "", fmt.Errorf("unexpected characters after quoted value")
		}
		inner := raw[1:end]
		if quote == '"' {
			return unescapeDoubleQuoted(inner), nil
		}
		// Single quotes are literal.
		return inner, nil
	default:
		// Unquoted values run to an inline comment or end of line.
		if i := strings.Index(raw, " #"); i >= 0 {
			raw = raw[:i]
		}
		return strings.TrimSpace(raw), nil
	}
}

// findClosingQuote returns the index of the closing quote, honoring
// backslash escapes inside double-quoted values.
func findClosingQuote(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			return i
		}
	}
	return -1
}

func unescapeDoubleQuoted(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
