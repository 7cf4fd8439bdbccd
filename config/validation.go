package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.DBDriver {
	case "postgres":
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_PORT": cfg.DBPort,
			"DB_NAME": cfg.DBName,
			"DB_USER": cfg.DBUser,
		} {
			if value == "" {
				errs = append(errs, ValidationError{field, "required when DB_DRIVER is postgres"})
			}
		}
		if cfg.DBPassword == "" && cfg.Env != Development && cfg.Env != Test {
			errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret is required"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "required when DB_DRIVER is sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret is required"})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT", "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
