package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig
	Client   ClientConfig
	Proxy    ProxyConfig
	LogLevel string `mapstructure:"log_mode"`
}

type APIConfig struct {
	// BaseURL is where the client sends requests: the proxy in production,
	// the backend directly in development.
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds a single request, uploads and downloads
	// included.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ClientConfig struct {
	// TokenPath overrides where the bearer token is persisted. Empty means
	// the per-user default location.
	TokenPath string `mapstructure:"token_path"`
	// DownloadDir is where fetched zip artifacts are written.
	DownloadDir string `mapstructure:"download_dir"`
	// PageSize is the job-list page length.
	PageSize int `mapstructure:"page_size"`
}

type ProxyConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // e.g., "debug", "release"
	// BackendURL is the upstream API base address. The proxy refuses to
	// forward when it is unset.
	BackendURL string `mapstructure:"backend_url"`
	// AllowedOrigins lists the browser origins the proxy accepts.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout_seconds", 300)
	v.SetDefault("client.token_path", "")
	v.SetDefault("client.download_dir", "downloads")
	v.SetDefault("client.page_size", 5)
	v.SetDefault("proxy.port", "3000")
	v.SetDefault("proxy.mode", "debug")
	v.SetDefault("proxy.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("log_mode", "debug")

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The hosting platform exposes the upstream address as BACKEND_URL;
	// honor that name next to the prefixed form.
	_ = v.BindEnv("proxy.backend_url", "APP_PROXY_BACKEND_URL", "BACKEND_URL")

	// Config file settings (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found is fine, we rely on env vars or defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
