package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := DefaultConfig()
	if cfg.Count != def.Count {
		t.Errorf("Count = %d, want %d", cfg.Count, def.Count)
	}
	if cfg.Threshold != 0.6 {
		t.Errorf("Threshold = %v, want 0.6", cfg.Threshold)
	}
	if cfg.OutputFile != "quantum_passwords.txt" {
		t.Errorf("OutputFile = %q, want quantum_passwords.txt", cfg.OutputFile)
	}
	if !cfg.History {
		t.Error("History should default to true")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RepairLimit != DefaultConfig().RepairLimit {
		t.Errorf("RepairLimit = %d, want %d", cfg.RepairLimit, DefaultConfig().RepairLimit)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, "count: 25\ntheme: gruvbox\ndictionary_dir: /tmp/words\nhistory: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Count != 25 {
		t.Errorf("Count = %d, want 25", cfg.Count)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Theme = %q, want gruvbox", cfg.Theme)
	}
	if cfg.DictionaryDir != "/tmp/words" {
		t.Errorf("DictionaryDir = %q, want /tmp/words", cfg.DictionaryDir)
	}
	if cfg.History {
		t.Error("History should be false")
	}
	// Untouched keys keep their defaults
	if cfg.OutputFile != DefaultConfig().OutputFile {
		t.Errorf("OutputFile = %q, want default", cfg.OutputFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "count: 25\n")
	t.Setenv("JEXI_COUNT", "40")
	t.Setenv("JEXI_THEME", "catppuccin")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Count != 40 {
		t.Errorf("Count = %d, want 40", cfg.Count)
	}
	if cfg.Theme != "catppuccin" {
		t.Errorf("Theme = %q, want catppuccin", cfg.Theme)
	}
}

func TestLoad_ClampsCount(t *testing.T) {
	path := writeConfig(t, "count: 5000\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Count != 1000 {
		t.Errorf("Count = %d, want 1000", cfg.Count)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "count: [oops\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error, got nil")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("JEXI_COUNT", "many")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() expected error, got nil")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JEXI_THEME=gruvbox\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	chdir(t, dir)
	// Setenv restores the variable that godotenv sets below.
	t.Setenv("JEXI_THEME", "")
	os.Unsetenv("JEXI_THEME")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Theme = %q, want gruvbox", cfg.Theme)
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JEXI_THEME=\"gruvbox\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	chdir(t, dir)

	if _, err := Load(""); err == nil {
		t.Fatal("Load() expected error for a malformed .env, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, true},
		{"negative repair limit", func(c *Config) { c.RepairLimit = -1 }, true},
		{"empty output", func(c *Config) { c.OutputFile = "" }, true},
		{"empty dictionary dir", func(c *Config) { c.DictionaryDir = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir() restore error = %v", err)
		}
	})
}
