package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds client settings for reaching the board service.
type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"`
		WSURL   string `yaml:"ws_url"`
		Token   string `yaml:"token"`
	} `yaml:"server"`
	Identity struct {
		UserID      string `yaml:"user_id"`
		Username    string `yaml:"username"`
		DisplayName string `yaml:"display_name"`
	} `yaml:"identity"`
	Chat struct {
		HistoryLimit int `yaml:"history_limit"`
	} `yaml:"chat"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "agora", "config.yaml")
	}
	return "config.yaml"
}

// Load reads a config file and applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// Missing file is fine when env vars carry the settings.
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if cfg.Chat.HistoryLimit <= 0 {
		cfg.Chat.HistoryLimit = 50
	}
	return &cfg, nil
}

// Validate checks that the settings required to connect are present.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base_url is required (config file or AGORA_SERVER)")
	}
	if c.Identity.Username == "" {
		return fmt.Errorf("identity username is required (config file or AGORA_USER)")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGORA_SERVER"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("AGORA_WS"); v != "" {
		cfg.Server.WSURL = v
	}
	if v := os.Getenv("AGORA_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("AGORA_USER"); v != "" {
		cfg.Identity.Username = v
	}
}
