package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sweeplabs/sweepd/internal/core/domain"
	"github.com/sweeplabs/sweepd/internal/core/ports"
	"github.com/sweeplabs/sweepd/utils"
)

// ledgerCallTimeout bounds every call to the ledger collaborator so a
// slow node fails the trigger instead of hanging its caller.
const ledgerCallTimeout = 10 * time.Second

// Service is the sweep decision engine: it verifies signing authority
// at construction and, per trigger, reads a fresh balance, derives the
// sweep amount and submits the transfer.
type Service struct {
	signer ports.SignerService
	ledger ports.LedgerService

	monitoredAddress  string
	collectionAddress string
	permissionID      int32
	policy            domain.SweepPolicy

	trust       domain.TrustState
	trustReason string

	// Serializes read-balance -> compute -> submit so two triggers can
	// never race the same pre-sweep balance.
	sweepMtx sync.Mutex
}

func NewService(
	signer ports.SignerService,
	ledger ports.LedgerService,
	monitoredAddress, collectionAddress string,
	permissionID int32,
	policy domain.SweepPolicy,
) (*Service, error) {
	if policy.ResidualSun < 0 || policy.FeeMarginSun < 0 {
		return nil, fmt.Errorf("residual and fee margin must be non-negative")
	}

	svc := &Service{
		signer:            signer,
		ledger:            ledger,
		monitoredAddress:  monitoredAddress,
		collectionAddress: collectionAddress,
		permissionID:      permissionID,
		policy:            policy,
	}

	if err := svc.validateAuthorization(context.Background()); err != nil {
		return nil, fmt.Errorf("cannot validate account control: %w", err)
	}

	log.WithFields(log.Fields{
		"service_address":    signer.Address(),
		"monitored_account":  monitoredAddress,
		"collection_address": collectionAddress,
		"residual_sun":       policy.ResidualSun,
		"fee_margin_sun":     policy.FeeMarginSun,
		"authorization":      svc.trust.String(),
	}).Info("sweep engine initialized")

	return svc, nil
}

// validateAuthorization proves, best-effort, that the signing key is
// entitled to move funds out of the monitored account. A missing
// permission ID is fatal; an unreachable ledger or an absent key only
// degrades trust, since real enforcement happens at broadcast.
func (s *Service) validateAuthorization(ctx context.Context) error {
	if s.monitoredAddress == s.signer.Address() {
		log.Info("service owns the monitored account, direct control")
		s.trust = domain.TrustVerified
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()

	snapshot, err := s.ledger.GetAccount(callCtx, s.monitoredAddress)
	if err != nil {
		s.trust = domain.TrustDegraded
		s.trustReason = fmt.Sprintf("could not verify permissions: %v", err)
		log.WithError(err).Warn("could not verify permissions via ledger, proceeding unverified")
		log.Warnf("ensure public key %s is authorized under permission %d of %s",
			s.signer.PublicKeyHex(), s.permissionID, s.monitoredAddress)
		return nil
	}

	perm := snapshot.FindPermission(s.permissionID)
	if perm == nil {
		return fmt.Errorf("permission %d does not exist on %s", s.permissionID, s.monitoredAddress)
	}

	if !perm.HasKey(s.signer.Address()) {
		s.trust = domain.TrustDegraded
		s.trustReason = fmt.Sprintf("service key not listed in permission %d", s.permissionID)
		log.Warnf("service key not found in permission %d keys, every sweep will fail at broadcast until it is added", s.permissionID)
		return nil
	}

	log.Infof("service key found in permission %d for %s", s.permissionID, s.monitoredAddress)
	s.trust = domain.TrustVerified
	return nil
}

// Sweep runs one sweep attempt and always returns an outcome; it never
// panics out of a trigger. At most one sweep is in flight at a time.
func (s *Service) Sweep(ctx context.Context) *domain.SweepOutcome {
	if !s.sweepMtx.TryLock() {
		log.Warn("sweep rejected, another sweep is in flight")
		return domain.Failed("sweep already in progress")
	}
	defer s.sweepMtx.Unlock()

	if s.trust == domain.TrustDegraded {
		log.Warnf("sweeping with unverified authorization: %s", s.trustReason)
	}

	callCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()

	snapshot, err := s.ledger.GetAccount(callCtx, s.monitoredAddress)
	if err != nil {
		log.WithError(err).Error("balance lookup failed")
		return domain.Failed(fmt.Sprintf("balance lookup failed: %v", err))
	}

	amount := s.policy.SweepAmount(snapshot.BalanceSun)
	log.WithFields(log.Fields{
		"balance_trx":  utils.SunToTRX(snapshot.BalanceSun),
		"balance_sun":  snapshot.BalanceSun,
		"sweep_amount": amount,
	}).Info("sweep decision")

	if amount == 0 {
		log.Info("no sweep needed, balance within residual and fee margin")
		return domain.NoActionNeeded()
	}

	log.Infof("sweeping %s TRX (%d SUN) to %s", utils.SunToTRX(amount), amount, s.collectionAddress)
	return s.submit(ctx, amount)
}

// submit builds, signs and broadcasts a transfer of the given amount
// and normalizes the node's answer into an outcome.
func (s *Service) submit(ctx context.Context, amountSun int64) *domain.SweepOutcome {
	if amountSun <= 0 {
		return domain.Failed(fmt.Sprintf("invalid transfer amount: %d SUN", amountSun))
	}

	buildCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()

	unsigned, err := s.ledger.CreateTransfer(
		buildCtx, s.monitoredAddress, s.collectionAddress, amountSun, s.permissionID,
	)
	if err != nil {
		log.WithError(err).Error("transaction build failed")
		return domain.Failed(fmt.Sprintf("transaction build failed: %v", err))
	}

	digest, err := transactionDigest(unsigned)
	if err != nil {
		log.WithError(err).Error("transaction digest check failed")
		return domain.Failed(err.Error())
	}

	signature, err := s.signer.SignDigest(digest)
	if err != nil {
		log.WithError(err).Error("signing failed")
		return domain.Failed(fmt.Sprintf("signing failed: %v", err))
	}

	signed := &domain.SignedTx{
		TxID:         unsigned.TxID,
		Payload:      unsigned.Payload,
		SignatureHex: hex.EncodeToString(signature),
	}

	broadcastCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()

	result, err := s.ledger.Broadcast(broadcastCtx, signed)
	if err != nil {
		log.WithError(err).Error("transaction broadcast failed")
		return domain.Failed(fmt.Sprintf("broadcast failed: %v", err))
	}

	if result == nil || !result.Accepted {
		reason := "unknown broadcast error"
		if result != nil && result.Message != "" {
			reason = result.Message
		}
		log.Errorf("transaction broadcast rejected: %s", reason)
		return domain.Failed(reason)
	}

	// Funds may have moved even without an identifier; reporting
	// failure here is deliberately conservative since the on-chain
	// state is unknown.
	if result.TxID == "" {
		log.Error("broadcast accepted but no transaction id returned")
		return domain.Failed("no transaction id returned")
	}

	log.Infof("sweep transaction broadcast, txid: %s", result.TxID)
	return domain.Submitted(result.TxID, amountSun)
}

// transactionDigest recomputes sha256(raw_data) locally and checks it
// against the node-supplied txID, so the service never signs a digest
// it has not derived itself.
func transactionDigest(tx *domain.UnsignedTx) ([]byte, error) {
	rawData, err := hex.DecodeString(tx.RawDataHex)
	if err != nil {
		return nil, fmt.Errorf("transaction raw data is not valid hex")
	}
	digest := sha256.Sum256(rawData)
	if hex.EncodeToString(digest[:]) != tx.TxID {
		return nil, fmt.Errorf("transaction digest mismatch, refusing to sign")
	}
	return digest[:], nil
}

// HealthReport describes the liveness surface: ledger reachability and
// the engine's authorization state.
type HealthReport struct {
	LedgerReachable bool
	LedgerError     string
	BlockNumber     int64
	ServiceAddress  string
	Trust           domain.TrustState
	TrustReason     string
}

func (s *Service) Health(ctx context.Context) HealthReport {
	report := HealthReport{
		ServiceAddress: s.signer.Address(),
		Trust:          s.trust,
		TrustReason:    s.trustReason,
	}

	callCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()

	block, err := s.ledger.GetNowBlock(callCtx)
	if err != nil {
		report.LedgerError = err.Error()
		return report
	}
	report.LedgerReachable = true
	report.BlockNumber = block.Number
	return report
}

func (s *Service) Policy() domain.SweepPolicy {
	return s.policy
}

func (s *Service) TrustState() domain.TrustState {
	return s.trust
}
