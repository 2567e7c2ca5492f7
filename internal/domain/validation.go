package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidInvestorName = errors.New("invalid investor name")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxInvestorNameLength = 255
	MaxAmount             = "1000000000000000" // 1 quadrillion, in base-currency units
)

// WithdrawalTolerance is the fraction by which a withdrawal may exceed the
// investor's computed market value, absorbing rounding drift between the
// caller's NAV report and the ledger's unit math. A policy choice carried over
// from the original system, not a derived invariant.
var WithdrawalTolerance = decimal.RequireFromString("0.01")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateInvestorName validates an investor name.
func ValidateInvestorName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInvestorName)
	}

	if len(name) > MaxInvestorNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInvestorName, MaxInvestorNameLength)
	}

	return nil
}

// ValidateEmail validates an email address. Empty email is allowed; contact
// fields are optional.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateAmount validates a deposit/withdrawal amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateDate validates an operation date.
func ValidateDate(date time.Time) error {
	if date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}
