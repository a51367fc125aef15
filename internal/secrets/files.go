package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveEnvFiles takes user-provided paths/globs and returns matching
// environment files. If patterns is empty, root is searched recursively
// for .env* files. Results are deduplicated and .git directories are
// always skipped.
func ResolveEnvFiles(patterns []string, root string) ([]string, error) {
	if len(patterns) == 0 {
		return findEnvFilesInDir(root)
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, root)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no matching files found")
	}

	return files, nil
}

func resolvePattern(pattern string, root string) ([]string, error) {
	// Convert relative patterns to absolute paths based on root.
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(root, pattern)
	}

	// Check if it's a directory.
	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findEnvFilesInDir(absPattern)
	}

	// Check if it contains glob characters.
	if strings.ContainsAny(pattern, "*?[") {
		return expandGlob(absPattern, pattern)
	}

	// Treat as literal file path.
	if _, err := os.Stat(absPattern); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", pattern)
	}

	if !isEnvFile(absPattern) {
		return nil, fmt.Errorf("file is not a .env file: %s", pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern string, pattern string) ([]string, error) {
	// Use doublestar for ** support.
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		// Skip directories.
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}

		if isInGitDir(m) {
			continue
		}

		if isEnvFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findEnvFilesInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip irregular files.
		if !d.Type().IsRegular() {
			return nil
		}

		if isEnvFile(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func isEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasPrefix(base, ".env.") || strings.HasSuffix(base, ".env")
}

func isInGitDir(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, part := range parts {
		if part == ".git" {
			return true
		}
	}
	return false
}
