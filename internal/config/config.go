package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
	defaultPort      = 8080
	defaultDSN       = "file:whiskerwatch.db"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

type ServerConfig struct {
	Env                string   `mapstructure:"env" validate:"required"`
	Port               int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	URL         string `mapstructure:"url" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	Debug       bool   `mapstructure:"debug"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required"`
	JWTTTL     time.Duration `mapstructure:"jwt_ttl" validate:"gt=0"`
	BcryptCost int           `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// env names bound to each config key.
var envBindings = map[string]string{
	"server.env":                  "APP_ENV",
	"server.port":                 "PORT",
	"server.log_level":            "LOG_LEVEL",
	"server.cors_allowed_origins": "CORS_ALLOWED_ORIGINS",
	"database.url":                "DATABASE_URL",
	"database.auto_migrate":       "AUTO_MIGRATE",
	"database.debug":              "DB_DEBUG",
	"auth.jwt_secret":             "JWT_SECRET",
	"auth.jwt_ttl":                "JWT_TTL",
	"auth.bcrypt_cost":            "BCRYPT_COST",
}

// Load reads .env when present, then environment variables over defaults,
// and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.env", "dev")
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", "*")
	v.SetDefault("database.url", defaultDSN)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.debug", false)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.jwt_ttl", defaultJWTTTL)
	v.SetDefault("auth.bcrypt_cost", 10)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Server.Env = strings.ToLower(strings.TrimSpace(c.Server.Env))
	c.Server.LogLevel = strings.ToLower(strings.TrimSpace(c.Server.LogLevel))
	c.Auth.JWTSecret = strings.TrimSpace(c.Auth.JWTSecret)

	var origins []string
	for _, o := range c.Server.CORSAllowedOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.Server.CORSAllowedOrigins = origins
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.IsProdLike() {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, DefaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		for _, o := range cfg.Server.CORSAllowedOrigins {
			if o == "*" {
				return fmt.Errorf("in prod/release CORS_ALLOWED_ORIGINS must list explicit origins")
			}
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.Server.Env))
	return env == "prod" || env == "production" || env == "release"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
