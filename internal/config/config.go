package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ptz-panel/internal/endpoints"
)

// Config представляет конфигурацию панели управления
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Backend сервис управления камерой
	Backend BackendConfig `yaml:"backend"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Feed настройки живого видео
	Feed FeedConfig `yaml:"feed"`

	// Security CORS для JSON API и канала управления
	Security SecurityConfig `yaml:"security"`

	// Metrics prometheus
	Metrics MetricsConfig `yaml:"metrics"`

	// UI тексты страницы поля
	UI UIConfig `yaml:"ui"`
}

type BackendConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Timeout 0 означает таймаут HTTP клиента по умолчанию (без ограничения)
	Timeout time.Duration `yaml:"timeout"`
	// HealthInterval период фоновой проверки бэкенда, 0 отключает
	HealthInterval time.Duration `yaml:"health_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type FeedConfig struct {
	// Relay включает ретрансляцию MJPEG бэкенда через /feed
	Relay bool `yaml:"relay"`
}

type SecurityConfig struct {
	EnableCORS     bool     `yaml:"enable_cors"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type UIConfig struct {
	Title     string `yaml:"title"`
	PoweredBy string `yaml:"powered_by"`
}

// Endpoints возвращает набор URL бэкенда
func (c *Config) Endpoints() endpoints.Endpoints {
	return endpoints.New(c.Backend.Host, c.Backend.Port)
}

// Address адрес HTTP сервера панели
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig загружает конфигурацию из файла поверх значений по умолчанию
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Backend.Host == "" {
		return fmt.Errorf("backend.host is required")
	}
	if c.Backend.Port <= 0 || c.Backend.Port > 65535 {
		return fmt.Errorf("invalid backend.port: %d", c.Backend.Port)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("invalid backend.timeout: %s", c.Backend.Timeout)
	}
	if c.Backend.HealthInterval < 0 {
		return fmt.Errorf("invalid backend.health_interval: %s", c.Backend.HealthInterval)
	}
	return nil
}

// GetDefaultConfig возвращает конфигурацию по умолчанию
func GetDefaultConfig() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: 8080,
		Backend: BackendConfig{
			Host:           endpoints.DefaultBackendHost,
			Port:           endpoints.DefaultBackendPort,
			HealthInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Feed: FeedConfig{
			Relay: false,
		},
		Security: SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		UI: UIConfig{
			Title:     "The Oval Cricket Ground",
			PoweredBy: "The Oval",
		},
	}
}
