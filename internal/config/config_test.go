package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SyntaxEnabled() || !cfg.WatchEnabled() {
		t.Error("zero config should enable syntax and watch")
	}
	if cfg.Mode != "" || cfg.Color != "" || cfg.Context != 0 {
		t.Errorf("zero config carries values: %+v", cfg)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, "mode: dark\ncolor: never\nsyntax: false\ncontext: 5\nwatch: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "dark" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.Color != "never" {
		t.Errorf("color = %q", cfg.Color)
	}
	if cfg.SyntaxEnabled() {
		t.Error("syntax: false not honored")
	}
	if cfg.Context != 5 {
		t.Errorf("context = %d", cfg.Context)
	}
	if cfg.WatchEnabled() {
		t.Error("watch: false not honored")
	}
}

func TestLoadExplicitTrueBooleans(t *testing.T) {
	path := writeConfig(t, "syntax: true\nwatch: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SyntaxEnabled() || !cfg.WatchEnabled() {
		t.Error("explicit true booleans not honored")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "mode: [broken\n")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config loaded without error")
	}
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", "refview", "config.yml")
	if path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}
}
