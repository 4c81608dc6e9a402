package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "https://fakestoreapi.com", cfg.Remote.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Remote.Timeout)
	assert.True(t, cfg.Remote.WriteThrough)
	assert.Equal(t, CacheDriverFile, cfg.Cache.Driver)
	assert.Equal(t, 2020, cfg.Report.Year)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("REMOTE_BASE_URL", "http://localhost:9000/")
	v.Set("REMOTE_MAX_RETRIES", "-3")
	v.Set("REMOTE_WRITE_THROUGH", "false")
	v.Set("CACHE_DRIVER", "MEMORY")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("REPORT_YEAR", "2023")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Remote.BaseURL, "sin slash final")
	assert.Equal(t, 0, cfg.Remote.MaxRetries)
	assert.False(t, cfg.Remote.WriteThrough)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2023, cfg.Report.Year)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("CACHE_DRIVER", "redis")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "admin", Password: "p@ss:w/rd", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://admin:p%40ss%3Aw%2Frd@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
