package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// MockLedgerStore is a mock implementation of LedgerStore backed by an
// in-memory ledger. Load and Save deep-copy state, so callers observe the
// same persistence isolation a real store provides.
type MockLedgerStore struct {
	mu     sync.Mutex
	ledger *domain.Ledger

	LoadFunc func(ctx context.Context) (*domain.Ledger, error)
	SaveFunc func(ctx context.Context, ledger *domain.Ledger) error

	LoadCount int
	SaveCount int
}

func NewMockLedgerStore() *MockLedgerStore {
	return &MockLedgerStore{ledger: domain.NewLedger()}
}

// Seed replaces the stored ledger.
func (m *MockLedgerStore) Seed(l *domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = l.Clone()
}

// Persisted returns a copy of the currently stored ledger.
func (m *MockLedgerStore) Persisted() *domain.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Clone()
}

func (m *MockLedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	m.mu.Lock()
	m.LoadCount++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Clone(), nil
}

func (m *MockLedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	m.mu.Lock()
	m.SaveCount++
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ledger)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = ledger.Clone()
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator producing
// deterministic sequential IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%06d", m.n)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{entries: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[key]; ok {
		return true, existing, nil
	}
	m.entries[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = response
	return nil
}
