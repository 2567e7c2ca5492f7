package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeRecord is the audit row written for one tranche per fee-application
// event. Append-only.
type FeeRecord struct {
	CalculationDate time.Time
	ID              string
	Period          string
	TrancheID       string
	Description     string
	InvestorID      int64
	FeeAmount       decimal.Decimal
	FeeUnits        decimal.Decimal
	UnitsBefore     decimal.Decimal
	UnitsAfter      decimal.Decimal
	PricePerUnit    decimal.Decimal
}
