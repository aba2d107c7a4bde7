package utils

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Tron mainnet address version byte, base58check addresses start
// with 'T' and are 34 characters long.
const (
	AddressVersion = 0x41
	AddressLength  = 34
)

// DecodeAddress decodes a base58check Tron address and returns its
// 20-byte account payload.
func DecodeAddress(address string) ([]byte, error) {
	if len(address) != AddressLength {
		return nil, fmt.Errorf("address must be %d characters, got %d", AddressLength, len(address))
	}
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if version != AddressVersion {
		return nil, fmt.Errorf("unexpected address version 0x%x", version)
	}
	if len(payload) != 20 {
		return nil, fmt.Errorf("unexpected address payload length %d", len(payload))
	}
	return payload, nil
}

// EncodeAddress encodes a 20-byte account payload as a base58check
// Tron address.
func EncodeAddress(payload []byte) string {
	return base58.CheckEncode(payload, AddressVersion)
}

// IsValidAddress reports whether the given string is a well-formed
// Tron address with a valid checksum.
func IsValidAddress(address string) bool {
	if len(address) != AddressLength || address[0] != 'T' {
		return false
	}
	_, err := DecodeAddress(address)
	return err == nil
}
