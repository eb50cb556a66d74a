package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.Dir != nil || cfg.History.Disabled != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[output]
dir = "/tmp/results"

[history]
disabled = true

[convert]
bits = 16

[wordcount]
lowercase = true
keep-punct = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.Dir == nil || *cfg.Output.Dir != "/tmp/results" {
		t.Fatalf("unexpected output dir: %+v", cfg.Output)
	}
	if cfg.History.Disabled == nil || !*cfg.History.Disabled {
		t.Fatalf("unexpected history config: %+v", cfg.History)
	}
	if cfg.Convert.Bits == nil || *cfg.Convert.Bits != 16 {
		t.Fatalf("unexpected convert config: %+v", cfg.Convert)
	}
	if cfg.WordCount.Lowercase == nil || !*cfg.WordCount.Lowercase {
		t.Fatalf("unexpected wordcount config: %+v", cfg.WordCount)
	}
	if cfg.WordCount.KeepPunct == nil || !*cfg.WordCount.KeepPunct {
		t.Fatalf("unexpected wordcount config: %+v", cfg.WordCount)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
