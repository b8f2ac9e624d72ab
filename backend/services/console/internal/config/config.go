package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "evzone/backend/libs/config"
	"evzone/backend/libs/request"
)

// Config defines console configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CONSOLE_HTTP_PORT"`
	} `yaml:"http"`
	JWT struct {
		Secret string `yaml:"secret" env:"EVZONE_JWT_SECRET"`
	} `yaml:"jwt"`
	Services struct {
		SessionsURL string `yaml:"sessionsUrl" env:"SESSIONS_SERVICE_URL"`
		PaymentsURL string `yaml:"paymentsUrl" env:"PAYMENTS_SERVICE_URL"`
	} `yaml:"services"`
	HTTPClient struct {
		TimeoutSeconds int `yaml:"timeoutSeconds" env:"CONSOLE_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
	// Redis holds the identity slots. An empty address keeps them in memory.
	Redis struct {
		Addr     string        `yaml:"addr" env:"CONSOLE_REDIS_ADDR"`
		Password string        `yaml:"password" env:"CONSOLE_REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"CONSOLE_REDIS_DB"`
		TTL      time.Duration `yaml:"ttl" env:"CONSOLE_REDIS_TTL"`
	} `yaml:"redis"`
	LoginRate struct {
		PerSecond float64 `yaml:"perSecond" env:"CONSOLE_LOGIN_RATE"`
		Burst     int     `yaml:"burst" env:"CONSOLE_LOGIN_BURST"`
	} `yaml:"loginRate"`
	Clients struct {
		Idle          time.Duration `yaml:"idle" env:"CONSOLE_CLIENT_IDLE"`
		EvictInterval time.Duration `yaml:"evictInterval" env:"CONSOLE_CLIENT_EVICT_INTERVAL"`
	} `yaml:"clients"`
	WebSocket struct {
		WriteTimeout   time.Duration `yaml:"writeTimeout" env:"CONSOLE_WS_WRITE_TIMEOUT"`
		AllowedOrigins []string      `yaml:"allowedOrigins" env:"CONSOLE_WS_ALLOWED_ORIGINS"`
	} `yaml:"websocket"`
	Dashboard struct {
		PageSize int `yaml:"pageSize" env:"CONSOLE_DASHBOARD_PAGE_SIZE"`
	} `yaml:"dashboard"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Services.SessionsURL = "http://localhost:8082"
	cfg.Services.PaymentsURL = "http://localhost:8083"
	cfg.HTTPClient.TimeoutSeconds = 5
	cfg.Redis.TTL = 24 * time.Hour
	cfg.LoginRate.PerSecond = 1
	cfg.LoginRate.Burst = 5
	cfg.Clients.Idle = 30 * time.Minute
	cfg.Clients.EvictInterval = time.Minute
	cfg.WebSocket.WriteTimeout = 10 * time.Second
	cfg.Dashboard.PageSize = 100

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if strings.TrimSpace(cfg.Services.SessionsURL) == "" || strings.TrimSpace(cfg.Services.PaymentsURL) == "" {
		return nil, errors.New("config: service urls required")
	}
	if cfg.Dashboard.PageSize < 1 || cfg.Dashboard.PageSize > request.MaxPageSize {
		return nil, fmt.Errorf("config: dashboard page size must be within 1..%d", request.MaxPageSize)
	}
	if cfg.LoginRate.PerSecond <= 0 || cfg.LoginRate.Burst <= 0 {
		return nil, errors.New("config: login rate must be positive")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}

// UseRedis reports whether identity slots live in Redis.
func (c *Config) UseRedis() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
