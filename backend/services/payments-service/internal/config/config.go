package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "evzone/backend/libs/config"
)

// Config defines payments service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"PAYMENTS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"PAYMENTS_POSTGRES_DSN"`
		MaxOpenConns int    `yaml:"maxOpenConns" env:"PAYMENTS_POSTGRES_MAX_OPEN"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret" env:"EVZONE_JWT_SECRET"`
	} `yaml:"jwt"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8083"

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

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8083"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
