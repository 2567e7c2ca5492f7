package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerYear converts holding periods into years for hurdle compounding.
const DaysPerYear = 365.25

// hurdlePrecision is the decimal precision used for the compounding power.
const hurdlePrecision = 12

// FeePreview is the computed performance fee for one tranche at a given price
// and as-of date. It is a pure computation result; applying it is the fee
// workflow's job.
type FeePreview struct {
	EntryDate     time.Time
	TrancheID     string
	InvestorID    int64
	Rates         EffectiveRates
	EntryPrice    decimal.Decimal
	Units         decimal.Decimal
	HighWaterMark decimal.Decimal
	YearsHeld     decimal.Decimal
	HurdlePrice   decimal.Decimal
	Threshold     decimal.Decimal
	CurrentPrice  decimal.Decimal
	ProfitPerUnit decimal.Decimal
	ExcessProfit  decimal.Decimal
	FeeAmount     decimal.Decimal
	FeeUnits      decimal.Decimal
}

// YearsHeld returns the holding period between two dates in years, using the
// 365.25-day convention. Non-positive durations yield zero.
func YearsHeld(from, to time.Time) decimal.Decimal {
	days := to.Sub(from).Hours() / 24
	if days <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromFloat(days / DaysPerYear)
}

// HurdlePrice compounds the entry price by the annual hurdle rate over the
// holding period: entryPrice * (1 + rate)^years. A non-positive holding period
// yields the entry price unchanged (no compounding).
func HurdlePrice(entryPrice, hurdleRate, years decimal.Decimal) decimal.Decimal {
	if years.LessThanOrEqual(decimal.Zero) || hurdleRate.IsZero() {
		return entryPrice
	}

	base := decimal.NewFromInt(1).Add(hurdleRate)

	factor, err := base.PowWithPrecision(years, hurdlePrecision)
	if err != nil {
		// base is always > 0 for validated rates; unreachable in practice.
		return entryPrice
	}

	return entryPrice.Mul(factor)
}

// CalculateTrancheFee computes the performance fee owed by one tranche as of
// the given date and unit price. The fee applies only to gains above the
// higher of the compounded hurdle price and the tranche's high-water mark, and
// is never negative: fees are one-directional, there is no clawback.
func CalculateTrancheFee(t *Tranche, asOf time.Time, currentPrice decimal.Decimal, rates EffectiveRates) FeePreview {
	years := YearsHeld(t.EntryDate, asOf)
	hurdle := HurdlePrice(t.EntryPrice, rates.HurdleRateAnnual, years)

	threshold := hurdle
	if t.HighWaterMark.GreaterThan(threshold) {
		threshold = t.HighWaterMark
	}

	profitPerUnit := currentPrice.Sub(threshold)
	if profitPerUnit.IsNegative() {
		profitPerUnit = decimal.Zero
	}

	excessProfit := profitPerUnit.Mul(t.Units)
	feeAmount := excessProfit.Mul(rates.PerformanceFeeRate)

	feeUnits := decimal.Zero
	if currentPrice.IsPositive() && feeAmount.IsPositive() {
		feeUnits = feeAmount.Div(currentPrice)
	}

	return FeePreview{
		InvestorID:    t.InvestorID,
		TrancheID:     t.TrancheID,
		EntryDate:     t.EntryDate,
		EntryPrice:    t.EntryPrice,
		Units:         t.Units,
		HighWaterMark: t.HighWaterMark,
		YearsHeld:     years,
		HurdlePrice:   hurdle,
		Threshold:     threshold,
		CurrentPrice:  currentPrice,
		ProfitPerUnit: profitPerUnit,
		ExcessProfit:  excessProfit,
		FeeAmount:     feeAmount,
		FeeUnits:      feeUnits,
		Rates:         rates,
	}
}
