package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

func IsValidMnemonic(mnemonic string) error {
	words := strings.Fields(mnemonic)
	if len(words) != 12 && len(words) != 24 {
		return fmt.Errorf("must have 12 or 24 words")
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("invalid mnemonic")
	}
	return nil
}

func IsValidPrivateKey(privateKey string) error {
	if len(privateKey) != 64 {
		return fmt.Errorf("private key must be 64 hex characters")
	}
	if _, err := hex.DecodeString(privateKey); err != nil {
		return fmt.Errorf("private key is not valid hex")
	}
	return nil
}

// PrivateKeyFromMnemonic derives the hex signing key from a BIP39
// mnemonic at m/44'/195'/0'/0/0, the standard Tron derivation path.
func PrivateKeyFromMnemonic(mnemonic string) (string, error) {
	if err := IsValidMnemonic(mnemonic); err != nil {
		return "", err
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", err
	}

	derivationPath := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 195,
		bip32.FirstHardenedChild + 0,
		0,
		0,
	}

	next := key
	for _, idx := range derivationPath {
		var err error
		if next, err = next.NewChildKey(idx); err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(next.Key), nil
}
