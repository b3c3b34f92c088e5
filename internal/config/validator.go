package config

import (
	"fmt"
	"strings"
)

var validModes = map[string]bool{
	"stdio": true,
	"sse":   true,
	"http":  true,
}

// Validate checks the configuration for startup-fatal problems. A
// missing API key is fatal: without it every backend call would fail
// with an authorization error minutes into a generation.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.APIKey) == "" {
		return fmt.Errorf("JIMENG_API_KEY environment variable is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("backend base URL cannot be empty")
	}
	if c.API.Model == "" {
		return fmt.Errorf("default model cannot be empty")
	}
	if c.API.VideoModel == "" {
		return fmt.Errorf("default video model cannot be empty")
	}

	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server mode %q (expected stdio, sse or http)", c.Server.Mode)
	}
	if c.Server.Mode != "stdio" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return fmt.Errorf("invalid port: %d", c.Server.Port)
		}
		if c.Server.Host == "" {
			return fmt.Errorf("host cannot be empty in %s mode", c.Server.Mode)
		}
	}

	return nil
}
