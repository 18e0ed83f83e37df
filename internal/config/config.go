package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/yiblet/clipstash/internal/datadir"
	"github.com/yiblet/clipstash/internal/store"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// minCaptureInterval keeps the poller from spinning on the clipboard.
const minCaptureInterval = 100 * time.Millisecond

// Config represents the clipstash configuration
type Config struct {
	Backend         string        `yaml:"backend"`
	DataDir         string        `yaml:"data_dir,omitempty"`
	CaptureInterval time.Duration `yaml:"capture_interval"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
	Retention       time.Duration `yaml:"retention"`
	AutoCaptureTag  string        `yaml:"auto_capture_tag"`
	LogLevel        string        `yaml:"log_level"`
	ShareBaseURL    string        `yaml:"share_base_url,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:         store.BackendSQLite,
		CaptureInterval: 2 * time.Second,
		SweepInterval:   time.Hour,
		Retention:       24 * time.Hour,
		AutoCaptureTag:  "auto-captured",
		LogLevel:        "info",
	}
}

// field binds a dashed key to a Config field.
type field struct {
	get func(c *Config) string
	set func(c *Config, value string) error
}

var fields = map[string]field{
	"backend": {
		get: func(c *Config) string { return c.Backend },
		set: func(c *Config, v string) error { c.Backend = v; return nil },
	},
	"data-dir": {
		get: func(c *Config) string {
			if c.DataDir == "" {
				return "[default]"
			}
			return c.DataDir
		},
		set: func(c *Config, v string) error { c.DataDir = v; return nil },
	},
	"capture-interval": durationField(func(c *Config) *time.Duration { return &c.CaptureInterval }),
	"sweep-interval":   durationField(func(c *Config) *time.Duration { return &c.SweepInterval }),
	"retention":        durationField(func(c *Config) *time.Duration { return &c.Retention }),
	"auto-capture-tag": {
		get: func(c *Config) string { return c.AutoCaptureTag },
		set: func(c *Config, v string) error { c.AutoCaptureTag = v; return nil },
	},
	"log-level": {
		get: func(c *Config) string { return c.LogLevel },
		set: func(c *Config, v string) error { c.LogLevel = v; return nil },
	},
	"share-base-url": {
		get: func(c *Config) string { return c.ShareBaseURL },
		set: func(c *Config, v string) error { c.ShareBaseURL = v; return nil },
	},
}

func durationField(ptr func(c *Config) *time.Duration) field {
	return field{
		get: func(c *Config) string { return ptr(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration value: %s", v)
			}
			*ptr(c) = d
			return nil
		},
	}
}

// Keys returns every configuration key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a configuration manager for
// ~/.config/clipstash/config.yaml
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := datadir.ConfigPath()
	if err != nil {
		return nil, err
	}
	return &ConfigManager{configPath: configPath}, nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// Load reads the configuration from file, or returns default if file doesn't exist
func (cm *ConfigManager) Load() (*Config, error) {
	data, err := os.ReadFile(cm.configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cm.validateAndSetDefaults(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := cm.validateAndSetDefaults(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateAndSetDefaults validates configuration and sets defaults for missing fields
func (cm *ConfigManager) validateAndSetDefaults(config *Config) error {
	defaults := DefaultConfig()

	config.Backend = strings.ToLower(strings.TrimSpace(config.Backend))
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if !slices.Contains(store.Backends, config.Backend) {
		return fmt.Errorf("backend must be one of %s", strings.Join(store.Backends, ", "))
	}

	if config.CaptureInterval == 0 {
		config.CaptureInterval = defaults.CaptureInterval
	}
	if config.CaptureInterval < minCaptureInterval {
		return fmt.Errorf("capture_interval must be at least %s", minCaptureInterval)
	}
	if config.SweepInterval == 0 {
		config.SweepInterval = defaults.SweepInterval
	}
	if config.SweepInterval < 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	if config.Retention == 0 {
		config.Retention = defaults.Retention
	}
	if config.Retention < 0 {
		return fmt.Errorf("retention must be positive")
	}

	config.AutoCaptureTag = strings.TrimSpace(config.AutoCaptureTag)
	if config.AutoCaptureTag == "" {
		config.AutoCaptureTag = defaults.AutoCaptureTag
	}
	if strings.Contains(config.AutoCaptureTag, ",") {
		return fmt.Errorf("auto_capture_tag cannot contain commas")
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if config.ShareBaseURL != "" {
		u, err := url.Parse(config.ShareBaseURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("share_base_url must be an absolute URL")
		}
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Update modifies a specific configuration value
func (cm *ConfigManager) Update(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	config, err := cm.Load()
	if err != nil {
		return err
	}

	if err := f.set(config, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	return cm.Save(config)
}

// Get returns the value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}

	config, err := cm.Load()
	if err != nil {
		return "", err
	}
	return f.get(config), nil
}

// List returns all configuration keys and values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(fields))
	for key, f := range fields {
		result[key] = f.get(config)
	}
	return result, nil
}
