package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestResolveEnvFiles_DefaultSearch(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, ".env"), "A=1")
	subDir := filepath.Join(tmpDir, "services", "api")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	writeTestFile(t, filepath.Join(subDir, ".env.production"), "B=2")

	files, err := ResolveEnvFiles(nil, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d: %v", len(files), files)
	}
}

func TestResolveEnvFiles_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()

	envFile := filepath.Join(tmpDir, ".env")
	writeTestFile(t, envFile, "TEST=value")

	files, err := ResolveEnvFiles([]string{".env"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got: %d", len(files))
	}
	if files[0] != envFile {
		t.Errorf("Expected %s, got: %s", envFile, files[0])
	}
}

func TestResolveEnvFiles_Glob(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{".env", ".env.local", ".env.production"} {
		writeTestFile(t, filepath.Join(tmpDir, name), "TEST=value")
	}
	writeTestFile(t, filepath.Join(tmpDir, "README.md"), "not an env file")

	files, err := ResolveEnvFiles([]string{".env*"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(files), files)
	}
}

func TestResolveEnvFiles_DoublestarGlob(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	writeTestFile(t, filepath.Join(subDir, ".env"), "DEEP=1")

	files, err := ResolveEnvFiles([]string{"**/.env"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d: %v", len(files), files)
	}
}

func TestResolveEnvFiles_Directory(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "services", "api")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	writeTestFile(t, filepath.Join(subDir, ".env"), "TEST=value")

	files, err := ResolveEnvFiles([]string{"services/api/"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got: %d", len(files))
	}
}

func TestResolveEnvFiles_SkipsGitDir(t *testing.T) {
	tmpDir := t.TempDir()

	gitDir := filepath.Join(tmpDir, ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	writeTestFile(t, filepath.Join(gitDir, ".env"), "SHOULD_NOT_APPEAR=1")
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "OK=1")

	files, err := ResolveEnvFiles(nil, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d: %v", len(files), files)
	}
	if files[0] != filepath.Join(tmpDir, ".env") {
		t.Errorf("Expected top-level .env, got: %s", files[0])
	}
}

func TestResolveEnvFiles_Deduplicates(t *testing.T) {
	tmpDir := t.TempDir()

	envFile := filepath.Join(tmpDir, ".env")
	writeTestFile(t, envFile, "TEST=value")

	files, err := ResolveEnvFiles([]string{".env", ".env*"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 deduplicated file, got %d: %v", len(files), files)
	}
}

func TestResolveEnvFiles_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := ResolveEnvFiles([]string{".env.missing"}, tmpDir); err == nil {
		t.Error("Expected error for missing literal path")
	}
}

func TestResolveEnvFiles_NotAnEnvFile(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	writeTestFile(t, path, "key: value")

	if _, err := ResolveEnvFiles([]string{"config.yaml"}, tmpDir); err == nil {
		t.Error("Expected error for non-env file")
	}
}
