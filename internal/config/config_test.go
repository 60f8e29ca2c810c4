package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("DOCS_DEFAULT_LIST_LIMIT", "25")
	t.Setenv("DOCS_MAX_UPLOAD_BYTES", "1048576")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 25, cfg.Documents.DefaultListLimit)
	assert.Equal(t, int64(1048576), cfg.Documents.MaxUploadBytes)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_TIMEZONE", "LOG_LEVEL", "MINIO_BUCKET", "DOCS_MAX_LIST_LIMIT", "DB_PING_TIMEOUT_SEC"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "documents", cfg.MinIO.Bucket)
	assert.Equal(t, 1000, cfg.Documents.MaxListLimit)
	assert.Equal(t, 5, cfg.Database.PingTimeoutSec)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	t.Setenv(key, "8589934592")
	assert.Equal(t, int64(8589934592), getEnvInt64(key, 0))

	t.Setenv(key, "1.5")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))
}
