package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ACCOUNTING_TEST_THEME=compact\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ACCOUNTING_TEST_THEME", "")
	os.Unsetenv("ACCOUNTING_TEST_THEME")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("ACCOUNTING_TEST_THEME"); got != "compact" {
		t.Fatalf("ACCOUNTING_TEST_THEME = %q, want compact", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("THEME", "compact")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Theme != "compact" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv("THEME", "neon")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Fatal("expected validation error for unknown theme")
	}
}
