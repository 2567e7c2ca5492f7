package postgres

import (
	"context"
	"time"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/usecase"
)

// RetryingStore decorates a LedgerStore with retry on transient failures.
// Deadlocks and serialization failures on the full-replace save are safe to
// retry because the save is idempotent for a given ledger image.
type RetryingStore struct {
	inner   usecase.LedgerStore
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewRetryingStore creates a new RetryingStore. metrics may be nil.
func NewRetryingStore(inner usecase.LedgerStore, retrier *Retrier, m *metrics.Metrics) *RetryingStore {
	return &RetryingStore{inner: inner, retrier: retrier, metrics: m}
}

// Load reads the ledger, retrying transient failures.
func (s *RetryingStore) Load(ctx context.Context) (*domain.Ledger, error) {
	defer s.observe("load", time.Now())

	var l *domain.Ledger
	err := s.retrier.Retry(ctx, func() error {
		var err error
		l, err = s.inner.Load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

// Save writes the ledger, retrying transient failures.
func (s *RetryingStore) Save(ctx context.Context, l *domain.Ledger) error {
	defer s.observe("save", time.Now())

	return s.retrier.Retry(ctx, func() error {
		return s.inner.Save(ctx, l)
	})
}

func (s *RetryingStore) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
