package domain

import "github.com/shopspring/decimal"

// RateSource records where an effective fee rate came from, for audit
// transparency in previews.
type RateSource string

const (
	RateSourceGlobal   RateSource = "global"
	RateSourceOverride RateSource = "override"
)

// FeeRates holds the performance-fee rate and the annual compounding hurdle
// rate, both as fractions (0.2 = 20%).
type FeeRates struct {
	PerformanceFeeRate decimal.Decimal
	HurdleRateAnnual   decimal.Decimal
}

// FeeOverride is a per-investor partial override. A nil field inherits the
// global value; resolution is per-field, not per-record.
type FeeOverride struct {
	PerformanceFeeRate *decimal.Decimal
	HurdleRateAnnual   *decimal.Decimal
}

// FeeConfig is the fund's fee configuration: global rates plus per-investor
// overrides.
type FeeConfig struct {
	Overrides map[int64]FeeOverride
	Global    FeeRates
}

// EffectiveRates is the result of resolving FeeConfig for one investor.
type EffectiveRates struct {
	FeeRates
	PerformanceFeeSource RateSource
	HurdleRateSource     RateSource
}

// Resolve returns the effective rates for an investor: each field comes from
// the investor's override when present, otherwise from the global config.
func (c *FeeConfig) Resolve(investorID int64) EffectiveRates {
	eff := EffectiveRates{
		FeeRates:             c.Global,
		PerformanceFeeSource: RateSourceGlobal,
		HurdleRateSource:     RateSourceGlobal,
	}

	ov, ok := c.Overrides[investorID]
	if !ok {
		return eff
	}

	if ov.PerformanceFeeRate != nil {
		eff.PerformanceFeeRate = *ov.PerformanceFeeRate
		eff.PerformanceFeeSource = RateSourceOverride
	}

	if ov.HurdleRateAnnual != nil {
		eff.HurdleRateAnnual = *ov.HurdleRateAnnual
		eff.HurdleRateSource = RateSourceOverride
	}

	return eff
}

// Clone returns a deep copy of the config.
func (c *FeeConfig) Clone() FeeConfig {
	out := FeeConfig{Global: c.Global}
	if c.Overrides != nil {
		out.Overrides = make(map[int64]FeeOverride, len(c.Overrides))
		for id, ov := range c.Overrides {
			cp := FeeOverride{}
			if ov.PerformanceFeeRate != nil {
				v := *ov.PerformanceFeeRate
				cp.PerformanceFeeRate = &v
			}
			if ov.HurdleRateAnnual != nil {
				v := *ov.HurdleRateAnnual
				cp.HurdleRateAnnual = &v
			}
			out.Overrides[id] = cp
		}
	}

	return out
}

// ValidateRates checks that rates are sane fractions: performance fee in
// [0, 1], hurdle rate in [0, 1].
func ValidateRates(r FeeRates) error {
	one := decimal.NewFromInt(1)

	if r.PerformanceFeeRate.IsNegative() || r.PerformanceFeeRate.GreaterThan(one) {
		return ErrInvalidFeeRate
	}

	if r.HurdleRateAnnual.IsNegative() || r.HurdleRateAnnual.GreaterThan(one) {
		return ErrInvalidFeeRate
	}

	return nil
}
