package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "")
	t.Setenv("DIARY_EDITOR", "")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != dir {
		t.Fatalf("expected base path %s, got %s", dir, cfg.BasePath())
	}
	if cfg.ConfigFile() != filepath.Join(dir, "config.toml") {
		t.Fatalf("unexpected config file %s", cfg.ConfigFile())
	}
	if cfg.Editor() != "nano" {
		t.Fatalf("expected editor from $EDITOR, got %q", cfg.Editor())
	}
	if cfg.ListMaxCount() != 10 {
		t.Fatalf("expected default list_max_count 10, got %d", cfg.ListMaxCount())
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	contents := "editor = \"code --wait\"\nauthor = \"masuke\"\nlist_max_count = 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Editor() != "code --wait" {
		t.Fatalf("unexpected editor %q", cfg.Editor())
	}
	if cfg.Author() != "masuke" {
		t.Fatalf("unexpected author %q", cfg.Author())
	}
	if cfg.ListMaxCount() != 3 {
		t.Fatalf("unexpected list_max_count %d", cfg.ListMaxCount())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DIARY_DIR", dir)
	t.Setenv("DIARY_LIST_MAX_COUNT", "25")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != dir {
		t.Fatalf("expected DIARY_DIR to select %s, got %s", dir, cfg.BasePath())
	}
	if cfg.ListMaxCount() != 25 {
		t.Fatalf("expected env override 25, got %d", cfg.ListMaxCount())
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("editor = = ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestWriteConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "diary")
	cfg := testConfig{path: dir}

	created, err := WriteConfig(cfg)
	if err != nil {
		t.Fatalf("write config: %v", err)
	}
	if !created {
		t.Fatalf("expected config to be created")
	}
	data, err := os.ReadFile(cfg.ConfigFile())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "ed") {
		t.Fatalf("expected editor in config, got:\n%s", data)
	}

	created, err = WriteConfig(cfg)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if created {
		t.Fatalf("expected existing config to be kept")
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Editor() != "ed" || loaded.ListMaxCount() != 7 {
		t.Fatalf("unexpected round trip: editor=%q count=%d", loaded.Editor(), loaded.ListMaxCount())
	}
}
