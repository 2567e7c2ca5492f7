package domain

import "github.com/shopspring/decimal"

// InitialUnitPrice prices the first deposit, when the fund has no outstanding
// units and NAV/units division is undefined.
var InitialUnitPrice = decimal.NewFromInt(1000)

// PricePerUnit converts a reported total NAV and total outstanding units into
// a price per unit. Returns ErrDivisionByZero when totalUnits <= 0; callers
// must treat that as "no price available", not a crash.
func PricePerUnit(totalNAV, totalUnits decimal.Decimal) (decimal.Decimal, error) {
	if totalUnits.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrDivisionByZero
	}

	return totalNAV.Div(totalUnits), nil
}
