package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Fatalf("default base url missing")
	}
	if cfg.Session.Path != "libraryctl.db" {
		t.Fatalf("default session path wrong: %q", cfg.Session.Path)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("default log level wrong: %q", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api:\n  base_url: http://localhost:8080/library-api\nsession:\n  path: /tmp/s.db\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/library-api" {
		t.Fatalf("base url not read: %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level not read: %q", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing config file should error")
	}
}
