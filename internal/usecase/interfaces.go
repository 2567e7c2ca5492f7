package usecase

import (
	"context"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// LedgerStore is durable storage for the complete fund ledger. The engine's
// contract is full load and full replace-on-save; no partial or incremental
// persistence is assumed.
type LedgerStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, ledger *domain.Ledger) error
}

// IDGenerator generates unique IDs for tranches, transactions and fee records.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage for mutating API requests.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
