package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFeeConfig_Resolve(t *testing.T) {
	cfg := FeeConfig{
		Global: FeeRates{
			PerformanceFeeRate: dec("0.2"),
			HurdleRateAnnual:   dec("0.06"),
		},
		Overrides: map[int64]FeeOverride{
			1: {PerformanceFeeRate: decPtr("0.1")},
			2: {HurdleRateAnnual: decPtr("0.08")},
			3: {PerformanceFeeRate: decPtr("0"), HurdleRateAnnual: decPtr("0")},
		},
	}

	tests := []struct {
		name       string
		investorID int64
		wantPerf   string
		wantHurdle string
		perfSrc    RateSource
		hurdleSrc  RateSource
	}{
		{
			name:       "no override inherits global",
			investorID: 99,
			wantPerf:   "0.2",
			wantHurdle: "0.06",
			perfSrc:    RateSourceGlobal,
			hurdleSrc:  RateSourceGlobal,
		},
		{
			name:       "partial override resolves per field",
			investorID: 1,
			wantPerf:   "0.1",
			wantHurdle: "0.06",
			perfSrc:    RateSourceOverride,
			hurdleSrc:  RateSourceGlobal,
		},
		{
			name:       "hurdle-only override inherits performance rate",
			investorID: 2,
			wantPerf:   "0.2",
			wantHurdle: "0.08",
			perfSrc:    RateSourceGlobal,
			hurdleSrc:  RateSourceOverride,
		},
		{
			name:       "explicit zero override is not inherited away",
			investorID: 3,
			wantPerf:   "0",
			wantHurdle: "0",
			perfSrc:    RateSourceOverride,
			hurdleSrc:  RateSourceOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff := cfg.Resolve(tt.investorID)

			if !eff.PerformanceFeeRate.Equal(dec(tt.wantPerf)) {
				t.Errorf("performance rate: expected %s, got %s", tt.wantPerf, eff.PerformanceFeeRate)
			}
			if !eff.HurdleRateAnnual.Equal(dec(tt.wantHurdle)) {
				t.Errorf("hurdle rate: expected %s, got %s", tt.wantHurdle, eff.HurdleRateAnnual)
			}
			if eff.PerformanceFeeSource != tt.perfSrc {
				t.Errorf("performance source: expected %s, got %s", tt.perfSrc, eff.PerformanceFeeSource)
			}
			if eff.HurdleRateSource != tt.hurdleSrc {
				t.Errorf("hurdle source: expected %s, got %s", tt.hurdleSrc, eff.HurdleRateSource)
			}
		})
	}
}

func TestFeeConfig_Clone(t *testing.T) {
	cfg := FeeConfig{
		Global:    FeeRates{PerformanceFeeRate: dec("0.2"), HurdleRateAnnual: dec("0.06")},
		Overrides: map[int64]FeeOverride{1: {PerformanceFeeRate: decPtr("0.1")}},
	}

	clone := cfg.Clone()

	*clone.Overrides[1].PerformanceFeeRate = dec("0.5")
	if !cfg.Overrides[1].PerformanceFeeRate.Equal(dec("0.1")) {
		t.Error("clone shares override pointers with the original")
	}

	clone.Overrides[2] = FeeOverride{}
	if _, ok := cfg.Overrides[2]; ok {
		t.Error("clone shares the overrides map with the original")
	}
}

func TestValidateRates(t *testing.T) {
	tests := []struct {
		name        string
		perf        string
		hurdle      string
		expectError bool
	}{
		{name: "valid", perf: "0.2", hurdle: "0.06"},
		{name: "zero rates", perf: "0", hurdle: "0"},
		{name: "full fee", perf: "1", hurdle: "1"},
		{name: "negative performance rate", perf: "-0.1", hurdle: "0.06", expectError: true},
		{name: "performance rate over 1", perf: "1.5", hurdle: "0.06", expectError: true},
		{name: "negative hurdle", perf: "0.2", hurdle: "-0.01", expectError: true},
		{name: "hurdle over 1", perf: "0.2", hurdle: "1.2", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRates(FeeRates{
				PerformanceFeeRate: dec(tt.perf),
				HurdleRateAnnual:   dec(tt.hurdle),
			})

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
