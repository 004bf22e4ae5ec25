package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Game.Sound != nil || cfg.UI.CanvasCols != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[game]
sound = true
lang = "ko"

[feedback]
enabled = false
timeout = 4

[ui]
canvas-cols = 72

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Sound == nil || !*cfg.Game.Sound {
		t.Fatalf("expected sound enabled")
	}
	if cfg.Game.Lang == nil || *cfg.Game.Lang != "ko" {
		t.Fatalf("expected lang ko")
	}
	if cfg.Feedback.Enabled == nil || *cfg.Feedback.Enabled {
		t.Fatalf("expected feedback disabled")
	}
	if cfg.Feedback.Timeout == nil || *cfg.Feedback.Timeout != 4 {
		t.Fatalf("expected timeout 4")
	}
	if cfg.UI.CanvasCols == nil || *cfg.UI.CanvasCols != 72 || cfg.UI.CanvasRows != nil {
		t.Fatalf("unexpected ui config: %+v", cfg.UI)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nsounds = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadEnvSkipsMissingAndKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("DALGONA_TEST_KEY= from-file \nDALGONA_TEST_KEPT=file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DALGONA_TEST_KEPT", "process")
	t.Setenv("DALGONA_TEST_KEY", "")
	if err := os.Unsetenv("DALGONA_TEST_KEY"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	if err := LoadEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got := APIKey("DALGONA_TEST_KEY"); got != "from-file" {
		t.Fatalf("expected key from file, got %q", got)
	}
	if got := os.Getenv("DALGONA_TEST_KEPT"); got != "process" {
		t.Fatalf("existing variable overwritten: %q", got)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "dalgona", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "dalgona", "dalgona.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "dalgona", "dalgona.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
