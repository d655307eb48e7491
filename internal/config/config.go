package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type AIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type ListConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type ShipmentsConfig struct {
	TrackingPrefix string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	AI          AIConfig
	List        ListConfig
	Shipments   ShipmentsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:          v.GetString("DB_DSN"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		AI: AIConfig{
			APIKey:      v.GetString("GEMINI_API_KEY"),
			Model:       v.GetString("GEMINI_MODEL"),
			Temperature: float32(v.GetFloat64("GEMINI_TEMPERATURE")),
		},
		List: ListConfig{
			DefaultPageSize: v.GetInt("LIST_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("LIST_MAX_PAGE_SIZE"),
		},
		Shipments: ShipmentsConfig{
			TrackingPrefix: v.GetString("TRACKING_PREFIX"),
		},
	}

	if raw := strings.TrimSpace(v.GetString("DB_CONN_MAX_LIFETIME")); raw != "" {
		lifetime, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
		}
		cfg.DB.ConnMaxLifetime = lifetime
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 9002
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if !v.IsSet("GEMINI_TEMPERATURE") {
		cfg.AI.Temperature = 0.2
	}
	if cfg.List.DefaultPageSize <= 0 {
		cfg.List.DefaultPageSize = 10
	}
	if cfg.List.MaxPageSize <= 0 {
		cfg.List.MaxPageSize = 100
	}
	if cfg.Shipments.TrackingPrefix == "" {
		cfg.Shipments.TrackingPrefix = "RUM"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.List.DefaultPageSize > cfg.List.MaxPageSize {
		return fmt.Errorf("LIST_DEFAULT_PAGE_SIZE must not exceed LIST_MAX_PAGE_SIZE")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
