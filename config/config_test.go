package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	v "github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	c, err := load(v.New(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "sqlite:maqola.db", c.DatabaseURL)
	assert.Equal(t, "env-secret", c.JWTSecret)
	assert.Equal(t, "HS256", c.JWTAlgorithm)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, "bcrypt", c.PasswordHash)
	assert.Equal(t, "Education", c.DefaultCategory)
	assert.Empty(t, c.CORSOrigins)
	assert.False(t, c.SSLEnabled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HOST_PORT", "9000")
	t.Setenv("HOST_CORS", "https://a.example, https://b.example")
	t.Setenv("DB_URL", "postgres://maqola:pw@localhost/maqola")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("SECURITY_PASSWORD_HASH", "ARGON2ID")
	t.Setenv("PUBLICATION_DEFAULT_CATEGORY", " Science ")

	c, err := load(v.New(), "", "bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, "postgres://maqola:pw@localhost/maqola", c.DatabaseURL)
	assert.Equal(t, "HS512", c.JWTAlgorithm)
	assert.Equal(t, 90*time.Minute, c.SessionTTL)
	assert.Equal(t, "argon2id", c.PasswordHash)
	assert.Equal(t, "Science", c.DefaultCategory)
	assert.Equal(t, "bob@example.com", c.DeleteUserEmail)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
log_level = "debug"

[host]
port = 3000
domain = "maqola.example"

[jwt]
secret = "file-secret"
ttl = "2h"
`), 0o600))

	c, err := load(v.New(), path, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, "maqola.example", c.Domain)
	assert.Equal(t, "file-secret", c.JWTSecret)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	_, err := load(v.New(), filepath.Join(t.TempDir(), "nope.toml"), "")
	assert.Error(t, err)
}

func TestLoad_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := load(v.New(), "", "")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"log level":    {"APP_LOG_LEVEL": "chatty"},
		"port":         {"HOST_PORT": "70000"},
		"ssl":          {"HOST_SSL_ENABLED": "true"},
		"algorithm":    {"JWT_ALGORITHM": "RS256"},
		"ttl":          {"JWT_TTL": "-1h"},
		"hash":         {"SECURITY_PASSWORD_HASH": "md5"},
		"bcrypt cost":  {"SECURITY_BCRYPT_COST": "2"},
		"category":     {"PUBLICATION_DEFAULT_CATEGORY": "   "},
		"database url": {"DB_URL": " "},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "env-secret")
			for k, val := range env {
				t.Setenv(k, val)
			}

			_, err := load(v.New(), "", "")
			assert.Error(t, err)
		})
	}
}

func TestGenSecret(t *testing.T) {
	a, b := GenSecret(), GenSecret()
	assert.Len(t, a, 128)
	assert.NotEqual(t, a, b)
}
