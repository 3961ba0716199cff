package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DOCBROWSER_DOTENV_TEST=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DOCBROWSER_DOTENV_TEST") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if got := os.Getenv("DOCBROWSER_DOTENV_TEST"); got != "from-file" {
		t.Errorf("expected variable from file, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
	if err := loadDotEnv(""); err != nil {
		t.Errorf("empty path should be ignored, got %v", err)
	}
}
