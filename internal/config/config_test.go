package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Backend != "sqlite" {
		t.Errorf("Expected default backend sqlite, got %s", config.Backend)
	}
	if config.CaptureInterval != 2*time.Second {
		t.Errorf("Expected default capture interval 2s, got %s", config.CaptureInterval)
	}
	if config.SweepInterval != time.Hour {
		t.Errorf("Expected default sweep interval 1h, got %s", config.SweepInterval)
	}
	if config.Retention != 24*time.Hour {
		t.Errorf("Expected default retention 24h, got %s", config.Retention)
	}
	if config.AutoCaptureTag != "auto-captured" {
		t.Errorf("Expected default tag auto-captured, got %s", config.AutoCaptureTag)
	}
	if config.DataDir != "" {
		t.Errorf("Expected default data dir empty, got %s", config.DataDir)
	}
}

func TestConfigManager_LoadNonExistent(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	config, err := cm.Load()
	if err != nil {
		t.Fatalf("Expected no error loading non-existent config, got: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), config); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cm := NewConfigManagerWithPath(configPath)

	testConfig := &Config{
		Backend:         "bolt",
		DataDir:         "/custom/path",
		CaptureInterval: 5 * time.Second,
		SweepInterval:   30 * time.Minute,
		Retention:       48 * time.Hour,
		AutoCaptureTag:  "clipboard",
		LogLevel:        "debug",
		ShareBaseURL:    "https://clips.example.com/view",
	}

	if err := cm.Save(testConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := cm.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if diff := cmp.Diff(testConfig, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigManager_LoadPartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("backend: memory\nretention: 2h\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := NewConfigManagerWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := DefaultConfig()
	want.Backend = "memory"
	want.Retention = 2 * time.Hour
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigManager_LoadMalformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("backend: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewConfigManagerWithPath(configPath).Load(); err == nil {
		t.Error("Expected error loading malformed config")
	}
}

func TestConfigManager_Validation(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	tests := []struct {
		name     string
		modify   func(c *Config)
		errorMsg string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "blank fields take defaults", modify: func(c *Config) { *c = Config{} }},
		{name: "backend case folded", modify: func(c *Config) { c.Backend = " Bolt " }},
		{
			name:     "unknown backend",
			modify:   func(c *Config) { c.Backend = "redis" },
			errorMsg: "backend must be one of sqlite, bolt, memory",
		},
		{
			name:     "capture interval too short",
			modify:   func(c *Config) { c.CaptureInterval = time.Millisecond },
			errorMsg: "capture_interval must be at least 100ms",
		},
		{
			name:     "negative sweep interval",
			modify:   func(c *Config) { c.SweepInterval = -time.Minute },
			errorMsg: "sweep_interval must be positive",
		},
		{
			name:     "negative retention",
			modify:   func(c *Config) { c.Retention = -time.Hour },
			errorMsg: "retention must be positive",
		},
		{
			name:     "tag with comma",
			modify:   func(c *Config) { c.AutoCaptureTag = "a,b" },
			errorMsg: "auto_capture_tag cannot contain commas",
		},
		{
			name:     "relative share url",
			modify:   func(c *Config) { c.ShareBaseURL = "clips/view" },
			errorMsg: "share_base_url must be an absolute URL",
		},
		{
			name:     "bad log level",
			modify:   func(c *Config) { c.LogLevel = "loud" },
			errorMsg: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := cm.Save(config)

			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got none", tt.errorMsg)
			}
			if !strings.HasPrefix(err.Error(), "invalid configuration: "+tt.errorMsg) {
				t.Errorf("Expected error message %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestConfigManager_Update(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	tests := []struct {
		name        string
		key         string
		value       string
		want        string
		expectError bool
	}{
		{name: "backend", key: "backend", value: "bolt", want: "bolt"},
		{name: "data dir", key: "data-dir", value: "/custom/path", want: "/custom/path"},
		{name: "capture interval", key: "capture-interval", value: "90s", want: "1m30s"},
		{name: "sweep interval", key: "sweep-interval", value: "15m", want: "15m0s"},
		{name: "retention", key: "retention", value: "72h", want: "72h0m0s"},
		{name: "tag", key: "auto-capture-tag", value: "clip", want: "clip"},
		{name: "log level", key: "log-level", value: "warn", want: "warn"},
		{name: "share url", key: "share-base-url", value: "https://example.com/s", want: "https://example.com/s"},
		{name: "invalid key", key: "invalid-key", value: "value", expectError: true},
		{name: "invalid duration", key: "retention", value: "forever", expectError: true},
		{name: "invalid backend", key: "backend", value: "postgres", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cm.Update(tt.key, tt.value)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %s, but got none", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %s: %v", tt.name, err)
			}

			got, err := cm.Get(tt.key)
			if err != nil {
				t.Fatalf("Failed to get value after update: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected retrieved value %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConfigManager_FailedUpdateLeavesFile(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err := cm.Update("backend", "bolt"); err != nil {
		t.Fatal(err)
	}
	if err := cm.Update("backend", "nope"); err == nil {
		t.Fatal("Expected error for invalid backend")
	}

	got, err := cm.Get("backend")
	if err != nil {
		t.Fatal(err)
	}
	if got != "bolt" {
		t.Errorf("backend = %s after failed update, want bolt", got)
	}
}

func TestConfigManager_List(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	values, err := cm.List()
	if err != nil {
		t.Fatalf("Failed to list default config: %v", err)
	}

	want := map[string]string{
		"backend":          "sqlite",
		"data-dir":         "[default]",
		"capture-interval": "2s",
		"sweep-interval":   "1h0m0s",
		"retention":        "24h0m0s",
		"auto-capture-tag": "auto-captured",
		"log-level":        "info",
		"share-base-url":   "",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if len(Keys()) != len(want) {
		t.Errorf("Keys() returned %d keys, want %d", len(Keys()), len(want))
	}
}

func TestNewConfigManager(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cm, err := NewConfigManager()
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	configPath := cm.GetConfigPath()
	if !filepath.IsAbs(configPath) {
		t.Errorf("Expected absolute config path, got %s", configPath)
	}
	if !strings.HasSuffix(configPath, ".config/clipstash/config.yaml") {
		t.Errorf("Expected config path to end with .config/clipstash/config.yaml, got %s", configPath)
	}
}
