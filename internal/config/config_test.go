package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 4, cfg.MatchBatchSize)
	assert.Equal(t, 50, cfg.AlertsLimit)
	assert.Zero(t, cfg.AutoCheckInterval)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.IsProduction())
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGO_URL", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MONGO_URL", "postgres://scout@localhost:5432/scout")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "postgres://scout@localhost:5432/scout", cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGO_URL", "")
	t.Setenv("DB_NAME", "scout_test")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("AUTO_CHECK_INTERVAL_SECONDS", "90")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PORT", "9001")
	t.Setenv("API_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "file:scout_test.db?_pragma=busy_timeout(5000)", cfg.SQLiteDSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 90*time.Second, cfg.AutoCheckInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 9001, cfg.APIPort)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{StorageDriver: DriverMemory, MatchBatchSize: 4, AlertsLimit: 50}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.StorageDriver = "mongo"
	assert.Error(t, c.Validate())

	c = base()
	c.MatchBatchSize = 0
	assert.Error(t, c.Validate())

	c = base()
	c.TelegramToken = "token"
	assert.Error(t, c.Validate())
	c.TelegramChatID = 42
	assert.NoError(t, c.Validate())
}

func TestLoadRejectsBadChatID(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLogFormatFollowsEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_FORMAT", "")

	t.Setenv("ENVIRONMENT", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)

	t.Setenv("ENVIRONMENT", "production")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)

	t.Setenv("LOG_FORMAT", "text")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}
