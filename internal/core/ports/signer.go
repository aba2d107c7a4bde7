package ports

// SignerService holds the service's signing identity. Key material is
// loaded once at startup and immutable for the process lifetime.
type SignerService interface {
	// Address is the base58check address derived from the signing key.
	Address() string

	// PublicKeyHex is the uncompressed public key in hex.
	PublicKeyHex() string

	// SignDigest signs a 32-byte transaction digest and returns the
	// 65-byte recoverable signature the ledger expects.
	SignDigest(digest []byte) ([]byte, error)
}
