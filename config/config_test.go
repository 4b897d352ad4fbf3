package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var envKeys = []string{
	"APP_ENV", "HTTP_PORT", "GRPC_PORT", "SHUTDOWN_TIMEOUT", "MAX_UPLOAD_BYTES",
	"LOGGER_LEVEL", "LOGGER_ENCODING", "LOGGER_DISABLE_CALLER", "LOGGER_DISABLE_STACKTRACE",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_SSLMODE", "POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
	"POSTGRES_CONN_MAX_LIFETIME", "POSTGRES_CONN_MAX_IDLE_TIME", "POSTGRES_RUN_MIGRATIONS",
	"BLOB_BUCKET", "BLOB_REGION", "BLOB_ENDPOINT", "BLOB_ACCESS_KEY", "BLOB_SECRET_KEY",
	"BLOB_PUBLIC_BASE_URL", "BLOB_URL", "BLOB_USE_PATH_STYLE",
	"KAFKA_BROKERS", "KAFKA_TOPIC_PRODUCTS", "CATALOG_LEGACY_DELETE",
}

// clearEnv unsets every variable LoadEnv reads; t.Setenv restores them on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "product-images", cfg.Blob.Bucket)
	assert.Empty(t, cfg.Blob.AccessKey)
	assert.Empty(t, cfg.Blob.SecretKey)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.Catalog.LegacyDelete)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("CATALOG_LEGACY_DELETE", "true")
	t.Setenv("BLOB_PUBLIC_BASE_URL", "https://cdn.example.com/images")

	cfg := LoadEnv()

	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Catalog.LegacyDelete)
	assert.Equal(t, "https://cdn.example.com/images", cfg.Blob.PublicBaseURL)
}

func TestLoadEnv_LegacyPublicURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLOB_URL", "https://cdn.example.com/legacy")

	cfg := LoadEnv()

	assert.Equal(t, "https://cdn.example.com/legacy", cfg.Blob.PublicBaseURL)
}

func TestLoadEnv_IgnoresUnrelatedStorageNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONTAINER_NAME", "some-pod-container")
	t.Setenv("ACCOUNT_NAME", "storageaccount")
	t.Setenv("ACCOUNT_KEY", "c2VjcmV0")

	cfg := LoadEnv()

	assert.Equal(t, "product-images", cfg.Blob.Bucket)
	assert.Empty(t, cfg.Blob.AccessKey)
	assert.Empty(t, cfg.Blob.SecretKey)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
