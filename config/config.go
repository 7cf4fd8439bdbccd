package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// devJWTSecret signs tokens in development and test when no secret is configured.
const devJWTSecret = "recipe-api-insecure-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Rate limiting for recipe writes
	RateLimit       int
	RateLimitWindow time.Duration

	// Image storage
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	MediaDir     string
	MediaBaseURL string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8000")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "recipes")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "recipes.db")
	v.SetDefault("redis_db", 0)
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("rate_limit", 60)
	v.SetDefault("rate_limit_window", "1m")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("media_dir", "media")
}

// LoadConfig reads configuration from environment variables, with secrets
// optionally overridden by Docker secret files.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:             env,
		ServerHost:      v.GetString("server_host"),
		ServerPort:      v.GetString("server_port"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		LogLevel:        v.GetString("log_level"),
		DBDriver:        strings.ToLower(v.GetString("db_driver")),
		DBHost:          v.GetString("db_host"),
		DBPort:          v.GetString("db_port"),
		DBUser:          v.GetString("db_user"),
		DBPassword:      v.GetString("db_password"),
		DBName:          v.GetString("db_name"),
		DBSSLMode:       v.GetString("db_ssl_mode"),
		SQLitePath:      v.GetString("sqlite_path"),
		RedisURL:        v.GetString("redis_url"),
		RedisHost:       v.GetString("redis_host"),
		RedisPort:       v.GetString("redis_port"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		RateLimit:       v.GetInt("rate_limit"),
		RateLimitWindow: v.GetDuration("rate_limit_window"),
		S3Bucket:        v.GetString("s3_bucket_name"),
		S3Region:        v.GetString("aws_region"),
		S3Endpoint:      v.GetString("s3_endpoint"),
		MediaDir:        v.GetString("media_dir"),
		MediaBaseURL:    strings.TrimRight(v.GetString("media_base_url"), "/"),
	}

	// Docker secrets win over plain environment variables
	for name, field := range map[string]*string{
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
	} {
		if secret := readSecret(name); secret != "" {
			*field = secret
		}
	}

	if cfg.JWTSecret == "" && (env == Development || env == Test) {
		slog.Warn("JWT_SECRET not set, using insecure development secret", "env", env)
		cfg.JWTSecret = devJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
