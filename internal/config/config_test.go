package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ORDERS_API_URL", "https://shop.example.com/api/")
	t.Setenv("ORDERS_API_TOKEN", "secret")

	cfg, err := load()
	require.NoError(t, err)

	require.Equal(t, "https://shop.example.com/api", cfg.Orders.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.Orders.TTL)
	require.Equal(t, 30*time.Minute, cfg.Rates.TTL)
	require.Equal(t, "TRY", cfg.Rates.Currency)
	require.InDelta(t, 0.05, cfg.Rates.BufferPercent, 1e-12)
	require.InDelta(t, 3.45, cfg.Rates.DefaultRate, 1e-12)
	require.False(t, cfg.HasPostgres())
	require.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("ORDERS_API_URL", "")
	t.Setenv("ORDERS_API_TOKEN", "")

	_, err := load()
	require.Error(t, err)

	var missing *missingEnvError
	require.ErrorAs(t, err, &missing)
	require.ElementsMatch(t, []string{"ORDERS_API_URL", "ORDERS_API_TOKEN"}, missing.Keys)
}

func TestEnvDurationMS(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{name: "empty uses default", val: "", want: time.Second},
		{name: "plain milliseconds", val: "1500", want: 1500 * time.Millisecond},
		{name: "duration string", val: "2m", want: 2 * time.Minute},
		{name: "garbage uses default", val: "soon", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.val)
			require.Equal(t, tt.want, envDurationMS("TEST_DURATION", time.Second))
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{Pg: Postgres{
		Host: "db", Port: "5432", DB: "ops", User: "u", Password: "p@ss", SSLMode: "disable",
	}}
	require.Equal(t, "postgres://u:p%40ss@db:5432/ops?sslmode=disable", cfg.DSN())
}

func TestLoadKafka(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_WORKERS", "x")

	k := LoadKafka()
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, k.Brokers)
	require.Equal(t, "sync-requests", k.Topic)
	require.Equal(t, "opsboard-sync", k.Group)
	require.Equal(t, 2, k.Workers)
}
