package config

// Config represents the jimeng-mcp server configuration
type Config struct {
	// API holds the backend collaborator settings
	API APIConfig `json:"api" mapstructure:"api"`

	// Server holds the serving mode settings
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// APIConfig holds Jimeng backend configuration
type APIConfig struct {
	BaseURL    string `json:"base_url" mapstructure:"base_url"`
	APIKey     string `json:"api_key" mapstructure:"api_key"`
	Model      string `json:"model" mapstructure:"model"`
	VideoModel string `json:"video_model" mapstructure:"video_model"`
}

// ServerConfig holds transport binding configuration
type ServerConfig struct {
	Mode string `json:"mode" mapstructure:"mode"` // stdio, sse, http
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// DefaultConfig returns the defaults the original deployment assumes
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://jimeng.duckcloud.fun",
			Model:      "jimeng-4.5",
			VideoModel: "jimeng-video-3.0",
		},
		Server: ServerConfig{
			Mode: "stdio",
			Host: "0.0.0.0",
			Port: 8000,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Redaction: true,
		},
	}
}
