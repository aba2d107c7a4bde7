package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SunPerTRX is the number of SUN, the ledger's smallest unit, in one TRX.
const SunPerTRX = 1_000_000

var sunPerTRX = decimal.NewFromInt(SunPerTRX)

// TRXToSun converts a decimal TRX string to an exact SUN amount.
// Amounts with sub-SUN precision are rejected rather than rounded.
func TRXToSun(trx string) (int64, error) {
	d, err := decimal.NewFromString(trx)
	if err != nil {
		return 0, fmt.Errorf("parse TRX amount %q: %w", trx, err)
	}
	sun := d.Mul(sunPerTRX)
	if !sun.IsInteger() {
		return 0, fmt.Errorf("TRX amount %q has sub-SUN precision", trx)
	}
	return sun.IntPart(), nil
}

// SunToTRX renders a SUN amount as a decimal TRX string.
func SunToTRX(sun int64) string {
	return decimal.NewFromInt(sun).Div(sunPerTRX).String()
}
