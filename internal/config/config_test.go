package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeplabs/sweepd/internal/config"
)

const (
	validKey        = "b5a4cea271ff424d7c31dc12a3e43e401df7a40d7412a15750f3f0b6b5449a28"
	validMonitored  = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"
	validCollection = "T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SWEEPD_PRIVATE_KEY", validKey)
	t.Setenv("SWEEPD_MONITORED_ADDRESS", validMonitored)
	t.Setenv("SWEEPD_COLLECTION_ADDRESS", validCollection)
	t.Setenv("SWEEPD_WEBHOOK_SECRET", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, int64(1_000_000), cfg.ResidualSun)
	require.Equal(t, int64(1_100_000), cfg.FeeMarginSun)
	require.Equal(t, int32(3), cfg.PermissionID)
	require.Equal(t, "https://api.trongrid.io", cfg.NodeURL)
	require.Equal(t, uint32(8000), cfg.HTTPPort)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SWEEPD_RESIDUAL_TRX", "2.5")
	t.Setenv("SWEEPD_FEE_MARGIN_TRX", "0.3")
	t.Setenv("SWEEPD_PERMISSION_ID", "2")
	t.Setenv("SWEEPD_NETWORK", "testnet")
	t.Setenv("SWEEPD_HTTP_PORT", "9000")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, int64(2_500_000), cfg.ResidualSun)
	require.Equal(t, int64(300_000), cfg.FeeMarginSun)
	require.Equal(t, int32(2), cfg.PermissionID)
	require.Equal(t, "https://nile.trongrid.io", cfg.NodeURL)
	require.Equal(t, uint32(9000), cfg.HTTPPort)
}

func TestLoadConfigCustomNodeURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SWEEPD_NODE_URL", "http://localhost:8090")
	t.Setenv("SWEEPD_NETWORK", "testnet")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8090", cfg.NodeURL)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("SWEEPD_PRIVATE_KEY", "")
	t.Setenv("SWEEPD_MONITORED_ADDRESS", "")
	t.Setenv("SWEEPD_COLLECTION_ADDRESS", "")
	t.Setenv("SWEEPD_WEBHOOK_SECRET", "")

	_, err := config.LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing required environment variables")
	require.Contains(t, err.Error(), "PRIVATE_KEY")
	require.Contains(t, err.Error(), "MONITORED_ADDRESS")
	require.Contains(t, err.Error(), "COLLECTION_ADDRESS")
	require.Contains(t, err.Error(), "WEBHOOK_SECRET")
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("malformed monitored address", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_MONITORED_ADDRESS", "not-an-address")

		_, err := config.LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "MONITORED_ADDRESS")
	})

	t.Run("malformed collection address", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_COLLECTION_ADDRESS", "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6u")

		_, err := config.LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "COLLECTION_ADDRESS")
	})

	t.Run("malformed private key", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_PRIVATE_KEY", "abc")

		_, err := config.LoadConfig()
		require.Error(t, err)
	})

	t.Run("both key and mnemonic", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_MNEMONIC",
			"reward liar quote property federal print outdoor attitude satoshi favorite special layer")

		_, err := config.LoadConfig()
		require.Error(t, err)
		require.Contains(t, err.Error(), "not both")
	})

	t.Run("mnemonic alone is accepted", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_PRIVATE_KEY", "")
		t.Setenv("SWEEPD_MNEMONIC",
			"reward liar quote property federal print outdoor attitude satoshi favorite special layer")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		require.NotEmpty(t, cfg.Mnemonic)
	})

	t.Run("negative residual", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SWEEPD_RESIDUAL_TRX", "-1")

		_, err := config.LoadConfig()
		require.Error(t, err)
	})
}
