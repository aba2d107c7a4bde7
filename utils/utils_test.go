package utils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeplabs/sweepd/utils"
)

// Well-known mainnet addresses: the USDT TRC-20 contract and the burn
// address.
var (
	usdtContract = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"
	burnAddress  = "T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb"
)

func TestAddresses(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		require.True(t, utils.IsValidAddress(usdtContract))
		require.True(t, utils.IsValidAddress(burnAddress))
	})

	t.Run("invalid addresses", func(t *testing.T) {
		require.False(t, utils.IsValidAddress(""))
		require.False(t, utils.IsValidAddress("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6")) // too short
		require.False(t, utils.IsValidAddress(usdtContract+"t"))                    // too long
		require.False(t, utils.IsValidAddress("AR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")) // wrong prefix
		// Same length, broken checksum.
		require.False(t, utils.IsValidAddress("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6u"))
	})

	t.Run("decode and encode round-trip", func(t *testing.T) {
		payload, err := utils.DecodeAddress(usdtContract)
		require.NoError(t, err)
		require.Len(t, payload, 20)

		require.Equal(t, usdtContract, utils.EncodeAddress(payload))
	})

	t.Run("encode produces distinct addresses for distinct payloads", func(t *testing.T) {
		a := utils.EncodeAddress(bytes.Repeat([]byte{0x01}, 20))
		b := utils.EncodeAddress(bytes.Repeat([]byte{0x02}, 20))
		require.NotEqual(t, a, b)
		require.True(t, utils.IsValidAddress(a))
		require.True(t, utils.IsValidAddress(b))
	})
}

func TestAmounts(t *testing.T) {
	t.Run("TRX to SUN", func(t *testing.T) {
		tests := []struct {
			trx string
			sun int64
		}{
			{"1", 1_000_000},
			{"1.1", 1_100_000},
			{"0", 0},
			{"0.000001", 1},
			{"47.9", 47_900_000},
		}
		for _, tt := range tests {
			sun, err := utils.TRXToSun(tt.trx)
			require.NoError(t, err, tt.trx)
			require.Equal(t, tt.sun, sun, tt.trx)
		}
	})

	t.Run("rejects sub-SUN precision", func(t *testing.T) {
		_, err := utils.TRXToSun("0.0000001")
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := utils.TRXToSun("one")
		require.Error(t, err)
	})

	t.Run("SUN to TRX", func(t *testing.T) {
		require.Equal(t, "1", utils.SunToTRX(1_000_000))
		require.Equal(t, "1.1", utils.SunToTRX(1_100_000))
		require.Equal(t, "47.9", utils.SunToTRX(47_900_000))
		require.Equal(t, "0.000001", utils.SunToTRX(1))
		require.Equal(t, "0", utils.SunToTRX(0))
	})
}

func TestSecrets(t *testing.T) {
	t.Run("private key validation", func(t *testing.T) {
		require.NoError(t, utils.IsValidPrivateKey(
			"b5a4cea271ff424d7c31dc12a3e43e401df7a40d7412a15750f3f0b6b5449a28"))
		require.Error(t, utils.IsValidPrivateKey("too-short"))
		require.Error(t, utils.IsValidPrivateKey(
			"zz" + "a4cea271ff424d7c31dc12a3e43e401df7a40d7412a15750f3f0b6b5449a28"))
	})

	t.Run("mnemonic validation", func(t *testing.T) {
		mnemonic := "reward liar quote property federal print outdoor attitude satoshi favorite special layer"
		require.NoError(t, utils.IsValidMnemonic(mnemonic))
		require.Error(t, utils.IsValidMnemonic("only three words"))
		require.Error(t, utils.IsValidMnemonic(
			"reward liar quote property federal print outdoor attitude satoshi favorite special notaword"))
	})

	t.Run("mnemonic key derivation is deterministic", func(t *testing.T) {
		mnemonic := "reward liar quote property federal print outdoor attitude satoshi favorite special layer"
		a, err := utils.PrivateKeyFromMnemonic(mnemonic)
		require.NoError(t, err)
		require.Len(t, a, 64)

		b, err := utils.PrivateKeyFromMnemonic(mnemonic)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})
}
