package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateInvestorName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid name", input: "Alice Kim"},
		{name: "empty name", input: "", expectError: true},
		{name: "whitespace only", input: "   ", expectError: true},
		{name: "too long", input: strings.Repeat("a", 256), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInvestorName(tt.input)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid email", input: "alice@example.com"},
		{name: "empty optional", input: ""},
		{name: "missing domain", input: "alice@", expectError: true},
		{name: "missing at", input: "alice.example.com", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		errorType error
	}{
		{name: "valid amount", amount: "1000"},
		{name: "zero amount", amount: "0", errorType: ErrInvalidAmount},
		{name: "negative amount", amount: "-5", errorType: ErrInvalidAmount},
		{name: "over maximum", amount: "2000000000000000", errorType: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.errorType == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.errorType != nil && !errors.Is(err, tt.errorType) {
				t.Errorf("expected error %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestTranche_Scale(t *testing.T) {
	tr := &Tranche{
		Units:                 decimal.NewFromInt(100),
		InvestedValue:         decimal.NewFromInt(100000),
		OriginalInvestedValue: decimal.NewFromInt(100000),
	}

	tr.Scale(decimal.RequireFromString("0.75"))

	if !tr.Units.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75 units, got %s", tr.Units)
	}
	if !tr.InvestedValue.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("expected invested value 75000, got %s", tr.InvestedValue)
	}
	if !tr.OriginalInvestedValue.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("lifetime baseline must not scale, got %s", tr.OriginalInvestedValue)
	}
}
