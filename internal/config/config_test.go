package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "", cfg.RedisAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Contains(t, cfg.DSN(), "port=5432")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_driver: sqlite\ndb_path: /tmp/tasks.db\nadmin_key: secret-key\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/tasks.db", cfg.DSN())
	assert.Equal(t, "secret-key", cfg.AdminKey)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "oracle")
	_, err = Load("")
	assert.Error(t, err)
}
