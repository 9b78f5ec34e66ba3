package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JournalPath == "" {
		t.Fatal("expected a default journal path")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.Indent != 0 {
		t.Fatalf("indent = %d, want 0 (auto)", cfg.Indent)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignscript.toml")
	content := `
journal_path = "/tmp/j.db"
indent = 4
log_level = "debug"

[patterns]
extra = ['alarmPipelines\[\d+\]\.script$']
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JournalPath != "/tmp/j.db" {
		t.Fatalf("journal path = %q", cfg.JournalPath)
	}
	if cfg.Indent != 4 || cfg.LogLevel != "debug" {
		t.Fatalf("indent/level = %d/%q", cfg.Indent, cfg.LogLevel)
	}
	if len(cfg.Patterns.Extra) != 1 {
		t.Fatalf("extra patterns = %v", cfg.Patterns.Extra)
	}
	if cfg.BaseDir != dir {
		t.Fatalf("base dir = %q, want %q", cfg.BaseDir, dir)
	}
}

func TestLoadEnvOverridesJournal(t *testing.T) {
	t.Setenv("IGNSCRIPT_JOURNAL", "/tmp/env.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JournalPath != "/tmp/env.db" {
		t.Fatalf("journal path = %q, want env override", cfg.JournalPath)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad level":  `log_level = "chatty"`,
		"bad indent": `indent = 9`,
	} {
		path := filepath.Join(dir, "c.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
