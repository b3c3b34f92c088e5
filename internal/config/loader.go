package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads configuration from an optional config file plus the
// environment. A .env file in the working directory is honored first so
// that JIMENG_* variables behave the same as in the original deployment.
func (l *Loader) Load() (*Config, error) {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("JIMENG")
	v.AutomaticEnv()

	// The original deployment configured everything through these
	// exact variable names; keep them authoritative.
	_ = v.BindEnv("api.base_url", "JIMENG_API_URL")
	_ = v.BindEnv("api.api_key", "JIMENG_API_KEY")
	_ = v.BindEnv("api.model", "JIMENG_MODEL")
	_ = v.BindEnv("api.video_model", "JIMENG_VIDEO_MODEL")
	_ = v.BindEnv("logging.level", "JIMENG_LOG_LEVEL")

	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".jimeng-mcp", "config.json")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the config file path
func (l *Loader) GetConfigPath() string {
	if l.configPath != "" {
		return l.configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jimeng-mcp", "config.json")
}
