package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Refresh.Focused(); got != 30*time.Second {
		t.Errorf("focused interval = %v, want 30s", got)
	}
	if got := cfg.Refresh.Unfocused(); got != 10*time.Minute {
		t.Errorf("unfocused interval = %v, want 10m", got)
	}
	if got := cfg.Refresh.User(); got != 0 {
		t.Errorf("user interval = %v, want none", got)
	}
	if cfg.API.BaseURL != "https://api.anthropic.com" {
		t.Errorf("base URL = %q, want production default", cfg.API.BaseURL)
	}
	if got := cfg.API.RequestTimeout(); got != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", got)
	}
	if cfg.Credentials.Service != "Claude Code-credentials" {
		t.Errorf("keyring service = %q, want Claude Code default", cfg.Credentials.Service)
	}
	if cfg.Log.File != "" {
		t.Errorf("log file = %q, want disabled by default", cfg.Log.File)
	}
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/glidetop.yaml", `
refresh:
  focused_interval: 15s
  unfocused_interval: 5m
  user_interval: 45s
api:
  base_url: http://localhost:9999
  timeout: 2s
log:
  file: /tmp/glidetop.log
`)

	cfg, err := Load(fs, "/glidetop.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Refresh.Focused(); got != 15*time.Second {
		t.Errorf("focused interval = %v, want 15s", got)
	}
	if got := cfg.Refresh.Unfocused(); got != 5*time.Minute {
		t.Errorf("unfocused interval = %v, want 5m", got)
	}
	if got := cfg.Refresh.User(); got != 45*time.Second {
		t.Errorf("user interval = %v, want 45s", got)
	}
	if cfg.API.BaseURL != "http://localhost:9999" {
		t.Errorf("base URL = %q, want local override", cfg.API.BaseURL)
	}
	if cfg.Log.File != "/tmp/glidetop.log" {
		t.Errorf("log file = %q, want /tmp/glidetop.log", cfg.Log.File)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("GLIDETOP_REFRESH_FOCUSED_INTERVAL", "7s")
	t.Setenv("GLIDETOP_API_BASE_URL", "http://stub:1234")

	cfg, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Refresh.Focused(); got != 7*time.Second {
		t.Errorf("focused interval = %v, want env override 7s", got)
	}
	if cfg.API.BaseURL != "http://stub:1234" {
		t.Errorf("base URL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nowhere/glidetop.yaml")
	if err == nil {
		t.Fatal("expected an error for an explicit missing config file")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			"unparseable interval",
			"refresh:\n  focused_interval: soon\n",
			"refresh.focused_interval",
		},
		{
			"non-positive interval",
			"refresh:\n  unfocused_interval: 0s\n",
			"refresh.unfocused_interval",
		},
		{
			"negative user interval",
			"refresh:\n  user_interval: -5s\n",
			"refresh.user_interval",
		},
		{
			"bad timeout",
			"api:\n  timeout: never\n",
			"api.timeout",
		},
		{
			"empty base URL",
			"api:\n  base_url: \"\"\n",
			"api.base_url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeConfig(t, fs, "/glidetop.yaml", tt.content)
			_, err := Load(fs, "/glidetop.yaml")
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not name %s", err, tt.wantIn)
			}
		})
	}
}
