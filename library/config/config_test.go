package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad(t *testing.T) {
	t.Setenv("LIBRARY_HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_NAME", "libraries")
	t.Setenv("KAFKA_ADDRS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(WithLogLevel(zapcore.DebugLevel), WithWriteTimeout(time.Minute))
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, "postgres", cfg.Database.Host)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Addrs)
	require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)
}

func TestLoad_OptionsAsDefaults(t *testing.T) {
	cfg, err := Load(WithLogLevel(zapcore.DebugLevel))
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.False(t, cfg.Kafka.Enabled())
}
