package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func TestRetryingStoreRetriesTransientLoadFailure(t *testing.T) {
	inner := mocks.NewMockLedgerStore()
	seed := domain.NewLedger()
	seed.AppendNAV(domain.NAVSnapshot{TotalNAV: decimal.NewFromInt(1000)})
	inner.Seed(seed)

	attempts := 0
	inner.LoadFunc = func(ctx context.Context) (*domain.Ledger, error) {
		attempts++
		if attempts < 2 {
			return nil, &pgconn.PgError{Code: pgErrDeadlock}
		}
		inner.LoadFunc = nil
		return inner.Load(ctx)
	}

	store := NewRetryingStore(inner, newTestRetrier(), nil)
	l, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected load to succeed after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if len(l.NAVHistory) != 1 {
		t.Fatalf("expected seeded ledger, got %d NAV snapshots", len(l.NAVHistory))
	}
}

func TestRetryingStoreDoesNotRetryPermanentSaveFailure(t *testing.T) {
	inner := mocks.NewMockLedgerStore()
	saveErr := errors.New("constraint violation")

	attempts := 0
	inner.SaveFunc = func(ctx context.Context, l *domain.Ledger) error {
		attempts++
		return saveErr
	}

	store := NewRetryingStore(inner, newTestRetrier(), nil)
	err := store.Save(context.Background(), domain.NewLedger())
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}
