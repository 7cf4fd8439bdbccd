package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points SECRETS_DIR at an empty directory and clears the variables
// the tests depend on.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	for _, key := range []string{
		"CI", "ENV", "SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "JWT_SECRET", "REDIS_URL", "RATE_LIMIT", "TOKEN_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "host=db port=5433 user=postgres password=postgres dbname=recipes sslmode=disable", cfg.DSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("DB_USER", "postgres")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.RedisEnabled())
}

func TestSecretsOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_SECRET", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("DB_USER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	assert.True(t, fields["JWT_SECRET"])
	assert.True(t, fields["DB_PASSWORD"])
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		Env:             Test,
		ServerPort:      "http",
		DBDriver:        "mysql",
		JWTSecret:       "x",
		TokenTTL:        time.Hour,
		RateLimit:       0,
		RateLimitWindow: time.Minute,
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "RATE_LIMIT")

	cfg.ServerPort = "8000"
	cfg.DBDriver = "sqlite"
	cfg.SQLitePath = ":memory:"
	cfg.RateLimit = 10
	assert.NoError(t, ValidateConfig(cfg))
}

func TestS3URL(t *testing.T) {
	s := &S3Config{BucketName: "media", Region: "eu-west-1"}
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/uploads/recipe/a.png", s.URL("uploads/recipe/a.png"))

	s.Endpoint = "http://localhost:9000"
	assert.Equal(t, "http://localhost:9000/media/a.png", s.URL("a.png"))

	s.BaseURL = "https://cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/a.png", s.URL("a.png"))
}
