package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitEpsilon is the smallest unit balance worth keeping. Tranches that fall
// below it after a withdrawal or fee charge are pruned.
var UnitEpsilon = decimal.RequireFromString("0.00000001")

// Tranche is a discrete lot of units acquired at one point in time. EntryDate,
// EntryPrice and HighWaterMark form the current-period fee baseline and are
// reset when a performance fee is charged; the Original* fields are the
// immutable lifetime baseline used for lifetime-return reporting.
type Tranche struct {
	EntryDate             time.Time
	OriginalEntryDate     time.Time
	TrancheID             string
	InvestorID            int64
	EntryPrice            decimal.Decimal
	Units                 decimal.Decimal
	HighWaterMark         decimal.Decimal
	OriginalEntryPrice    decimal.Decimal
	CumulativeFeesPaid    decimal.Decimal
	InvestedValue         decimal.Decimal
	OriginalInvestedValue decimal.Decimal
}

// MarketValue returns the tranche's value at the given price per unit.
func (t *Tranche) MarketValue(pricePerUnit decimal.Decimal) decimal.Decimal {
	return t.Units.Mul(pricePerUnit)
}

// Scale multiplies the tranche's units and current invested value by factor.
// Used by proportional withdrawals (factor < 1) and their undo (factor > 1).
// The lifetime baseline is untouched.
func (t *Tranche) Scale(factor decimal.Decimal) {
	t.Units = t.Units.Mul(factor)
	t.InvestedValue = t.InvestedValue.Mul(factor)
}

// IsDust reports whether the tranche's unit balance is below UnitEpsilon.
func (t *Tranche) IsDust() bool {
	return t.Units.LessThan(UnitEpsilon)
}

// Clone returns a deep copy of the tranche.
func (t *Tranche) Clone() *Tranche {
	c := *t
	return &c
}
