package config

import "time"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".docbrowser.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:    8080,
		DataDir: ".docbrowser",
		API: APIConfig{
			BaseURL: "http://localhost:9175",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}
