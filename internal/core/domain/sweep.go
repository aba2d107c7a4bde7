package domain

// SweepPolicy holds the amounts, in SUN, that a sweep must always leave
// behind in the monitored account.
type SweepPolicy struct {
	ResidualSun  int64
	FeeMarginSun int64
}

// SweepAmount returns how much of the given balance can be moved while
// retaining the residual and the fee margin. Never negative.
func (p SweepPolicy) SweepAmount(balanceSun int64) int64 {
	amount := balanceSun - p.ResidualSun - p.FeeMarginSun
	if amount < 0 {
		return 0
	}
	return amount
}
