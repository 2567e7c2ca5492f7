package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPricePerUnit(t *testing.T) {
	tests := []struct {
		name        string
		totalNAV    string
		totalUnits  string
		want        string
		expectError error
	}{
		{
			name:       "whole division",
			totalNAV:   "100000000",
			totalUnits: "100000",
			want:       "1000",
		},
		{
			name:       "fractional price",
			totalNAV:   "150000000",
			totalUnits: "100000",
			want:       "1500",
		},
		{
			name:       "loss below par",
			totalNAV:   "50000000",
			totalUnits: "100000",
			want:       "500",
		},
		{
			name:        "zero units",
			totalNAV:    "100000000",
			totalUnits:  "0",
			expectError: ErrDivisionByZero,
		},
		{
			name:        "negative units",
			totalNAV:    "100000000",
			totalUnits:  "-5",
			expectError: ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PricePerUnit(decimal.RequireFromString(tt.totalNAV), decimal.RequireFromString(tt.totalUnits))

			if tt.expectError != nil {
				if err != tt.expectError {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected price %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPricePerUnit_Idempotent(t *testing.T) {
	nav := decimal.RequireFromString("123456789.123456")
	units := decimal.RequireFromString("98765.4321")

	first, err := PricePerUnit(nav, units)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := PricePerUnit(nav, units)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("price not idempotent: %s vs %s", first, second)
	}
}
