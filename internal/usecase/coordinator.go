package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/fundledger/internal/domain"
)

// Coordinator serializes ledger mutations against the reloadable backing
// store. Mutations hold a coarse whole-ledger mutex: fee application touches
// many tranches across many investors atomically, so per-investor locking
// would not preserve its guarantees. Reads reload fresh state and never take
// the mutation lock, so they always observe the most recently persisted state
// and never an in-flight mutation.
type Coordinator struct {
	store    LedgerStore
	onCommit func(*domain.Ledger)
	mu       sync.Mutex
}

// NewCoordinator creates a Coordinator around the given store. onCommit, if
// non-nil, is called with the reloaded post-commit state after every
// successful mutation (used for gauge refresh); it runs under the mutation
// lock and must not call back into the coordinator.
func NewCoordinator(store LedgerStore, onCommit func(*domain.Ledger)) *Coordinator {
	return &Coordinator{store: store, onCommit: onCommit}
}

// Read reloads the ledger from the store and runs fn against the fresh
// snapshot. fn must not mutate state it expects to be persisted.
func (c *Coordinator) Read(ctx context.Context, fn func(*domain.Ledger) error) error {
	ledger, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %v", domain.ErrStoreFailure, err)
	}

	return fn(ledger)
}

// Mutate acquires the exclusive mutation lock, reloads the ledger, runs fn on
// the loaded scratch state, persists the full result, and reloads once more
// in case the store applies normalization on save. If fn fails nothing is
// persisted; if the save fails the mutation is aborted and no observable
// state changes.
func (c *Coordinator) Mutate(ctx context.Context, fn func(*domain.Ledger) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ledger, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %v", domain.ErrStoreFailure, err)
	}

	if err := fn(ledger); err != nil {
		return err
	}

	if err := c.store.Save(ctx, ledger); err != nil {
		return fmt.Errorf("%w: save: %v", domain.ErrStoreFailure, err)
	}

	committed, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: reload after save: %v", domain.ErrStoreFailure, err)
	}

	if c.onCommit != nil {
		c.onCommit(committed)
	}

	return nil
}
