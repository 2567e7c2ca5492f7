package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// FeePeriodLayout formats a fee record's accounting period.
	FeePeriodLayout = "2006-01"

	// DateLayout is the wire and token format for operation dates.
	DateLayout = "2006-01-02"
)
