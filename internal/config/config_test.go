package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 10*time.Second, cfg.Orders.SweepInterval)
	assert.Equal(t, 2*time.Minute, cfg.Orders.WatchIdle)
	assert.Equal(t, 7*24*time.Hour, cfg.Orders.DeliveryWindow)
	assert.False(t, cfg.Orders.PendingAutoAdvances)
	assert.True(t, cfg.Orders.AllowCancelAfterDelivery)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_ADDR", ":9090")
	t.Setenv("STOREFRONT_STORE__BACKEND", "memory")
	t.Setenv("STOREFRONT_ORDERS__SWEEP_INTERVAL", "250ms")
	t.Setenv("STOREFRONT_ORDERS__PENDING_AUTO_ADVANCES", "true")
	t.Setenv("STOREFRONT_ORDERS__WATCH_IDLE", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Orders.SweepInterval)
	assert.True(t, cfg.Orders.PendingAutoAdvances)
	assert.Equal(t, 30*time.Second, cfg.Orders.WatchIdle)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	body := []byte("store:\n  backend: redis\n  redis_addr: cache:6379\norders:\n  allow_cancel_after_delivery: false\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.False(t, cfg.Orders.AllowCancelAfterDelivery)
	assert.Equal(t, 10*time.Second, cfg.Orders.SweepInterval)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "sqlite"
	require.ErrorContains(t, cfg.Validate(), "unknown store.backend")

	cfg = Default()
	cfg.Orders.SweepInterval = 0
	require.ErrorContains(t, cfg.Validate(), "sweep_interval")

	cfg = Default()
	cfg.Orders.WatchIdle = time.Second
	require.ErrorContains(t, cfg.Validate(), "watch_idle")

	cfg = Default()
	cfg.Store.Backend = BackendMemory
	cfg.Store.DBConnString = ""
	require.NoError(t, cfg.Validate())
}
