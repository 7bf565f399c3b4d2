package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the server.
type Config struct {
	N8N struct {
		Host   string `mapstructure:"host"`
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"n8n"`
	HTTP struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"http"`
	TLS struct {
		Enable    bool     `mapstructure:"enable"`
		CertFile  string   `mapstructure:"cert_file"`
		KeyFile   string   `mapstructure:"key_file"`
		Hostnames []string `mapstructure:"hostnames"`
	} `mapstructure:"tls"`
}

// LoadConfig loads the configuration from an optional config file and
// the environment. Environment variables use the flattened upper-case
// form of the key, e.g. N8N_HOST, N8N_API_KEY, HTTP_PORT. A missing
// config file is not an error unless a path was given explicitly; the
// server runs from environment variables and defaults alone.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("n8n.host", "http://localhost:5678")
	v.SetDefault("n8n.api_key", "")
	v.SetDefault("http.port", 8080)
	v.SetDefault("tls.enable", false)
	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")
	v.SetDefault("tls.hostnames", []string{})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.N8N.Host = normalizeHost(config.N8N.Host)

	return &config, nil
}

// normalizeHost trims surrounding whitespace and a trailing slash so the
// API client can append its versioned path predictably.
func normalizeHost(input string) string {
	host := strings.TrimSpace(input)
	return strings.TrimSuffix(host, "/")
}
