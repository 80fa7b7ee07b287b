package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"LOG_LEVEL", "LOG_FORMAT", "GIN_MODE", "KAFKA_BROKERS", "KAFKA_TOPIC",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sqlite:///./db.data", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 2, cfg.DBMaxIdleConns)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "posts.events", cfg.KafkaTopic)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/posts")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "not a number")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "postgres://localhost/posts", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 2, cfg.DBMaxIdleConns)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLevel_Fallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, (&Config{LogLevel: "loud"}).Level())
	assert.Equal(t, zerolog.InfoLevel, (&Config{LogLevel: ""}).Level())
	assert.Equal(t, zerolog.WarnLevel, (&Config{LogLevel: "warn"}).Level())
}
