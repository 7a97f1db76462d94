package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName, "config.toml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	got, err = configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName, "config.toml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "control = 3\ntranslate = true\njson = true\ncache_dir = \"/tmp/c\"\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := Config{Control: 3, Translate: true, JSON: true, CacheDir: "/tmp/c"}
	if cfg != want {
		t.Errorf("loadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should be ignored: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"ExplicitMissing", filepath.Join(t.TempDir(), "none.toml"), "load config"},
		{"UnknownKey", writeConfig(t, "contrl = 1\n"), "unknown key"},
		{"ControlRange", writeConfig(t, "control = 8\n"), "out of range"},
		{"Syntax", writeConfig(t, "control = \n"), "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadConfig error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDefaultsApplyToCommands(t *testing.T) {
	configDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(configDir, appName), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(configDir, appName, "config.toml")
	if err := os.WriteFile(path, []byte("translate = true\njson = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "parse", "--no-cache", "KM"})
	if err := root.Execute(); err != nil {
		t.Fatalf("parse with config defaults: %v", err)
	}
	if !strings.Contains(out.String(), `"scale": 1000`) {
		t.Errorf("config should enable translation and JSON output:\n%s", out.String())
	}
}
