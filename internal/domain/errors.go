package domain

import "errors"

var (
	// Input errors
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrInvalidDate    = errors.New("date must be set")
	ErrInvalidFeeRate = errors.New("fee rate must be a fraction between 0 and 1")

	// Lookup errors
	ErrInvestorNotFound    = errors.New("investor not found")
	ErrTrancheNotFound     = errors.New("tranche not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Business-rule errors
	ErrInsufficientBalance = errors.New("amount exceeds investor balance")
	ErrDivisionByZero      = errors.New("no price available: no units outstanding")
	ErrNotUndoable         = errors.New("only the most recent transaction can be undone")
	ErrOperatorReserved    = errors.New("operation not allowed for the fund operator")

	// Fee application errors
	ErrTokenMismatch           = errors.New("confirm token does not match current ledger state")
	ErrAcknowledgementRequired = errors.New("risk and backup acknowledgements are required")

	// ErrConcurrentModification is reserved for a future optimistic-concurrency
	// store contract; the single-writer coordinator currently makes it unreachable.
	ErrConcurrentModification = errors.New("ledger was modified concurrently")

	// ErrStoreFailure wraps persistence-layer failures; always fatal to the
	// enclosing mutation.
	ErrStoreFailure = errors.New("ledger store failure")
)
