package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the kubesh configuration.
type Config struct {
	Kubectl    KubectlConfig     `yaml:"kubectl"`
	Picker     PickerConfig      `yaml:"picker"`
	History    HistoryConfig     `yaml:"history"`
	Extensions ExtensionsConfig  `yaml:"extensions"`
	Log        LogConfig         `yaml:"log"`
	Aliases    map[string]string `yaml:"aliases"`
}

// KubectlConfig locates the wrapped tool.
type KubectlConfig struct {
	Path string `yaml:"path"` // kubectl binary (default: "kubectl" from PATH)
}

// PickerConfig tunes the interactive picker.
type PickerConfig struct {
	DisableFzf bool `yaml:"disable_fzf"` // force the built-in picker
	MaxHeight  int  `yaml:"max_height"`  // visible rows cap (default 15)
}

// HistoryConfig controls shell history persistence.
type HistoryConfig struct {
	Enabled *bool `yaml:"enabled"` // default true
}

// ExtensionsConfig locates user extension scripts.
type ExtensionsConfig struct {
	Dir string `yaml:"dir"` // directory scanned for *.sh extension scripts
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultAliases are the shorthand expansions every session starts with.
// Config-file aliases are merged on top and may override them.
var DefaultAliases = map[string]string{
	"k":      "kubectl",
	"g":      "get",
	"d":      "describe",
	"pods":   "get pods",
	"svc":    "get services",
	"deploy": "get deployments",
}

// Load reads the config file at path, applying defaults and environment
// overrides. A missing file yields the defaults; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Kubectl.Path == "" {
		c.Kubectl.Path = "kubectl"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Picker.MaxHeight <= 0 {
		c.Picker.MaxHeight = 15
	}

	merged := make(map[string]string, len(DefaultAliases)+len(c.Aliases))
	for k, v := range DefaultAliases {
		merged[k] = v
	}
	for k, v := range c.Aliases {
		merged[k] = v
	}
	c.Aliases = merged
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KUBESH_KUBECTL"); v != "" {
		c.Kubectl.Path = v
	}
	if os.Getenv("KUBESH_NO_FZF") == "1" {
		c.Picker.DisableFzf = true
	}
	if os.Getenv("KUBESH_DEBUG") == "1" {
		c.Log.Level = "debug"
	}
}

// HistoryEnabled reports whether history persistence is on (default true).
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}
