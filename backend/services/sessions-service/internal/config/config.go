package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "evzone/backend/libs/config"
)

// Config defines sessions service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"SESSIONS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"SESSIONS_POSTGRES_DSN"`
		MaxOpenConns int    `yaml:"maxOpenConns" env:"SESSIONS_POSTGRES_MAX_OPEN"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret" env:"EVZONE_JWT_SECRET"`
	} `yaml:"jwt"`
	Scope struct {
		Enforce bool `yaml:"enforce" env:"SESSIONS_ENFORCE_SCOPE"`
	} `yaml:"scope"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8082"

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8082"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
