package domain

type SweepStatus string

const (
	StatusNoAction SweepStatus = "no_action"
	StatusSuccess  SweepStatus = "success"
	StatusFailed   SweepStatus = "failed"
)

// SweepOutcome is the normalized result of one sweep attempt. Exactly
// one is produced per trigger; it is returned to the caller and never
// persisted.
type SweepOutcome struct {
	Status    SweepStatus
	TxID      string
	AmountSun int64
	Reason    string
}

// NoActionNeeded reports a balance at or below residual plus margin.
// This is a normal, successful outcome.
func NoActionNeeded() *SweepOutcome {
	return &SweepOutcome{Status: StatusNoAction}
}

// Submitted reports a transfer accepted by the ledger for processing.
// Acceptance is provisional: no confirmation polling is performed.
func Submitted(txID string, amountSun int64) *SweepOutcome {
	return &SweepOutcome{Status: StatusSuccess, TxID: txID, AmountSun: amountSun}
}

// Failed reports a sweep attempt that did not result in an accepted
// transaction.
func Failed(reason string) *SweepOutcome {
	return &SweepOutcome{Status: StatusFailed, Reason: reason}
}
