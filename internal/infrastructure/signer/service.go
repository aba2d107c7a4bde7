package signer

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/sweeplabs/sweepd/utils"
)

// Service wraps the secp256k1 signing key and its derived Tron address.
// Immutable after construction.
type Service struct {
	privKey *btcec.PrivateKey
	address string
}

func NewService(privateKeyHex string) (*Service, error) {
	if err := utils.IsValidPrivateKey(privateKeyHex); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	privKey, _ := btcec.PrivKeyFromBytes(raw)

	return &Service{
		privKey: privKey,
		address: addressFromPubKey(privKey.PubKey()),
	}, nil
}

// NewServiceFromMnemonic derives the signing key from a BIP39 mnemonic
// at the standard Tron path before constructing the service.
func NewServiceFromMnemonic(mnemonic string) (*Service, error) {
	privateKeyHex, err := utils.PrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return NewService(privateKeyHex)
}

func (s *Service) Address() string {
	return s.address
}

func (s *Service) PublicKeyHex() string {
	return hex.EncodeToString(s.privKey.PubKey().SerializeUncompressed())
}

// SignDigest produces the 65-byte r||s||v recoverable signature Tron
// expects, with v in {0, 1}.
func (s *Service) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("digest must be 32 bytes, got %d", len(digest))
	}

	// SignCompact prepends the recovery byte (27 + v for uncompressed
	// keys); Tron wants it appended without the offset.
	compact := ecdsa.SignCompact(s.privKey, digest, false)
	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27
	return sig, nil
}

// addressFromPubKey derives the Tron address: Keccak-256 of the
// uncompressed public key body, last 20 bytes, base58check with the
// 0x41 version byte.
func addressFromPubKey(pubKey *btcec.PublicKey) string {
	raw := pubKey.SerializeUncompressed()
	hash := sha3.NewLegacyKeccak256()
	hash.Write(raw[1:])
	digest := hash.Sum(nil)
	return utils.EncodeAddress(digest[12:])
}
