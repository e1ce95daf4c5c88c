package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Viewer.SentimentFocus != 50 || cfg.Viewer.MarginGrowthFocus != 50 {
		t.Errorf("viewer defaults: %+v", cfg.Viewer)
	}
	if cfg.Viewer.AxisLimit != 5 {
		t.Errorf("axis limit default: %v", cfg.Viewer.AxisLimit)
	}
	if cfg.Search.DefaultLimit != 20 || cfg.Search.MaxLimit != 100 {
		t.Errorf("search defaults: %+v", cfg.Search)
	}
	if len(cfg.Import.Extensions) != 1 || cfg.Import.Extensions[0] != ".json" {
		t.Errorf("import extensions default: %v", cfg.Import.Extensions)
	}
	if !cfg.Import.RecursiveOrDefault() {
		t.Error("recursive should default to true")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  port: 9090
storage:
  database_path: ./data/db.sqlite
viewer:
  sentiment_focus: 80
import:
  directories:
    - ./incoming
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("host default: got %q", cfg.Server.Host)
	}
	if cfg.Viewer.SentimentFocus != 80 {
		t.Errorf("sentiment focus: got %v", cfg.Viewer.SentimentFocus)
	}
	if cfg.Viewer.MarginGrowthFocus != 50 {
		t.Errorf("margin growth default: got %v", cfg.Viewer.MarginGrowthFocus)
	}
	// Paths starting with ./ resolve relative to the config file.
	if want := filepath.Join(dir, "data/db.sqlite"); cfg.Storage.DatabasePath != want {
		t.Errorf("database path: got %q, want %q", cfg.Storage.DatabasePath, want)
	}
	if want := filepath.Join(dir, "incoming"); cfg.Import.Directories[0] != want {
		t.Errorf("import dir: got %q, want %q", cfg.Import.Directories[0], want)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}
