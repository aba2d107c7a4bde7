package domain

// TrustState records whether the service's signing authority over the
// monitored account could be verified at startup. A degraded state does
// not block sweeps, but every attempt is expected to fail at broadcast
// until the account's permissions are fixed.
type TrustState int

const (
	TrustVerified TrustState = iota
	TrustDegraded
)

func (t TrustState) String() string {
	if t == TrustVerified {
		return "verified"
	}
	return "degraded"
}
