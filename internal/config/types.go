package config

import "time"

// LogFormat selects the console encoding of log output.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Config is the top-level docbrowser configuration, corresponding to
// .docbrowser.yml.
type Config struct {
	Port            int       `yaml:"port" koanf:"port"`
	DataDir         string    `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	API             APIConfig `yaml:"api" koanf:"api"`
	Log             LogConfig `yaml:"log" koanf:"log"`
}

// APIConfig points at the backend serving /api/v1/documents.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" koanf:"base_url"`
	Token   string        `yaml:"token,omitempty" koanf:"token"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
	OAuth   OAuthConfig   `yaml:"oauth,omitempty" koanf:"oauth"`
}

// OAuthConfig enables the OAuth2 client-credentials grant against the
// documents API. It takes precedence over a static token.
type OAuthConfig struct {
	ClientID     string   `yaml:"client_id,omitempty" koanf:"client_id"`
	ClientSecret string   `yaml:"client_secret,omitempty" koanf:"client_secret"`
	TokenURL     string   `yaml:"token_url,omitempty" koanf:"token_url"`
	Scopes       []string `yaml:"scopes,omitempty" koanf:"scopes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
	File   string    `yaml:"file,omitempty" koanf:"file"`
}
