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
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "boof-cart", cfg.Storage.CartKey)
	assert.Equal(t, "theme", cfg.Storage.ThemeKey)
	assert.Equal(t, CatalogBuiltin, cfg.Catalog.Source)
	assert.Equal(t, 400*time.Millisecond, cfg.Checkout.SettleDelay)
	assert.Equal(t, 5*time.Second, cfg.Checkout.StageTimeout)
	assert.Equal(t, uint32(5), cfg.Checkout.BreakerMaxFailures)
	assert.Equal(t, 700*time.Millisecond, cfg.Simulation.PaymentDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulation.BookingDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulation.QuoteDelay)
	assert.Equal(t, "checkout-status", cfg.Events.Topic)
	assert.False(t, cfg.Events.Enabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: "9090"
storage:
  driver: redis
  redis:
    addr: redis:6379
checkout:
  stage_timeout: 2s
events:
  brokers:
    - kafka-1:9092
`), 0o600))

	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_SIMULATION_PAYMENT_DELAY", "10ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2*time.Second, cfg.Checkout.StageTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.PaymentDelay)
	assert.Equal(t, []string{"kafka-1:9092"}, cfg.Events.Brokers)
	assert.True(t, cfg.Events.Enabled())
}

func TestLoad_BrokersFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOREFRONT_EVENTS_BROKERS", "a:9092, b:9092")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Brokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STOREFRONT_STORAGE_DRIVER": "etcd"}},
		{"unknown catalog", map[string]string{"STOREFRONT_CATALOG_SOURCE": "csv"}},
		{"decline percent", map[string]string{"STOREFRONT_SIMULATION_DECLINE_PERCENT": "120"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
