package ports

import (
	"context"

	"github.com/sweeplabs/sweepd/internal/core/domain"
)

// LedgerService is the opaque ledger collaborator. Implementations talk
// to a Tron full node; the sweep engine only depends on this surface.
type LedgerService interface {
	// GetAccount returns a fresh snapshot of the given account's
	// balance and active permission set.
	GetAccount(ctx context.Context, address string) (*domain.AccountSnapshot, error)

	// GetNowBlock returns the latest block, used as a liveness probe.
	GetNowBlock(ctx context.Context) (*domain.BlockRef, error)

	// CreateTransfer asks the node to build an unsigned transfer of
	// amountSun from one address to another, authorized under the
	// given permission ID.
	CreateTransfer(
		ctx context.Context, from, to string, amountSun int64, permissionID int32,
	) (*domain.UnsignedTx, error)

	// Broadcast submits a signed transaction. A nil error only means
	// the node answered; acceptance is reported in the result.
	Broadcast(ctx context.Context, tx *domain.SignedTx) (*domain.BroadcastResult, error)
}
