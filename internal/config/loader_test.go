package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("should apply defaults when environment is empty", func(t *testing.T) {
		cfg, err := NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load()
		require.NoError(t, err)

		assert.Equal(t, "https://jimeng.duckcloud.fun", cfg.API.BaseURL)
		assert.Equal(t, "jimeng-4.5", cfg.API.Model)
		assert.Equal(t, "jimeng-video-3.0", cfg.API.VideoModel)
		assert.Equal(t, "stdio", cfg.Server.Mode)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.True(t, cfg.Logging.Redaction)
	})

	t.Run("should honor environment variables", func(t *testing.T) {
		t.Setenv("JIMENG_API_URL", "https://api.example.com")
		t.Setenv("JIMENG_API_KEY", "sk-test-123")
		t.Setenv("JIMENG_MODEL", "jimeng-4.1")
		t.Setenv("JIMENG_VIDEO_MODEL", "jimeng-video-2.0")
		t.Setenv("JIMENG_LOG_LEVEL", "debug")

		cfg, err := NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
		assert.Equal(t, "sk-test-123", cfg.API.APIKey)
		assert.Equal(t, "jimeng-4.1", cfg.API.Model)
		assert.Equal(t, "jimeng-video-2.0", cfg.API.VideoModel)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("should read config file when present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"api": {"api_key": "sk-from-file"},
			"server": {"mode": "http", "port": 9000}
		}`), 0o600))

		cfg, err := NewLoader(path).Load()
		require.NoError(t, err)

		assert.Equal(t, "sk-from-file", cfg.API.APIKey)
		assert.Equal(t, "http", cfg.Server.Mode)
		assert.Equal(t, 9000, cfg.Server.Port)
		// Untouched fields keep their defaults.
		assert.Equal(t, "https://jimeng.duckcloud.fun", cfg.API.BaseURL)
	})

	t.Run("should fail on malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewLoader(path).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestLoader_GetConfigPath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.json", NewLoader("/tmp/custom.json").GetConfigPath())
	assert.Contains(t, NewLoader("").GetConfigPath(), ".jimeng-mcp")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.API.APIKey = "sk-test"
		return cfg
	}

	t.Run("should accept defaults with API key", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing API key",
			mutate:  func(c *Config) { c.API.APIKey = "  " },
			wantErr: "JIMENG_API_KEY",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "base URL",
		},
		{
			name:    "missing model",
			mutate:  func(c *Config) { c.API.Model = "" },
			wantErr: "model",
		},
		{
			name:    "missing video model",
			mutate:  func(c *Config) { c.API.VideoModel = "" },
			wantErr: "video model",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Server.Mode = "grpc" },
			wantErr: "invalid server mode",
		},
		{
			name: "bad port in sse mode",
			mutate: func(c *Config) {
				c.Server.Mode = "sse"
				c.Server.Port = 0
			},
			wantErr: "invalid port",
		},
		{
			name: "empty host in http mode",
			mutate: func(c *Config) {
				c.Server.Mode = "http"
				c.Server.Host = ""
			},
			wantErr: "host cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("should not require port in stdio mode", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		assert.NoError(t, cfg.Validate())
	})
}
