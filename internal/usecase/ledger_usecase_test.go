package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedInvestor(l *domain.Ledger, id int64, name string) {
	l.Investors = append(l.Investors, &domain.Investor{ID: id, Name: name, JoinDate: day("2024-01-01")})
}

func newLedgerEnv() (*mocks.MockLedgerStore, *usecase.LedgerUseCase) {
	store := mocks.NewMockLedgerStore()

	l := domain.NewLedger()
	seedInvestor(l, 1, "Alice")
	seedInvestor(l, 2, "Bob")
	store.Seed(l)

	coord := usecase.NewCoordinator(store, nil)
	return store, usecase.NewLedgerUseCase(coord, mocks.NewMockIDGenerator(), nil)
}

func TestDeposit_FirstDepositBootstrapsPrice(t *testing.T) {
	store, uc := newLedgerEnv()

	tx, err := uc.Deposit(context.Background(), usecase.DepositInput{
		InvestorID:    1,
		Amount:        dec("100000000"),
		TotalNAVAfter: dec("100000000"),
		Date:          day("2024-01-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeDeposit, tx.Type)
	assert.True(t, tx.UnitsDelta.Equal(dec("100000")), "expected 100000 units, got %s", tx.UnitsDelta)

	persisted := store.Persisted()
	tranches := persisted.TranchesOf(1)
	require.Len(t, tranches, 1)

	tr := tranches[0]
	assert.True(t, tr.Units.Equal(dec("100000")))
	assert.True(t, tr.EntryPrice.Equal(dec("1000")))
	assert.True(t, tr.HighWaterMark.Equal(dec("1000")))
	assert.True(t, tr.OriginalEntryPrice.Equal(dec("1000")))
	assert.True(t, tr.InvestedValue.Equal(dec("100000000")))

	nav, ok := persisted.LatestNAV()
	require.True(t, ok)
	assert.True(t, nav.TotalNAV.Equal(dec("100000000")))
	assert.Equal(t, domain.TransactionTypeDeposit, nav.Source)
}

func TestDeposit_SecondDepositPricedFromPreDepositState(t *testing.T) {
	store, uc := newLedgerEnv()
	ctx := context.Background()

	_, err := uc.Deposit(ctx, usecase.DepositInput{
		InvestorID: 1, Amount: dec("100000000"), TotalNAVAfter: dec("100000000"), Date: day("2024-01-01"),
	})
	require.NoError(t, err)

	// Fund doubled to 200M before Bob's 50M deposit arrives, so the NAV
	// including his cash is 250M and his units are priced at 2000.
	tx, err := uc.Deposit(ctx, usecase.DepositInput{
		InvestorID: 2, Amount: dec("50000000"), TotalNAVAfter: dec("250000000"), Date: day("2024-06-01"),
	})
	require.NoError(t, err)

	assert.True(t, tx.UnitsDelta.Equal(dec("25000")), "expected 25000 units, got %s", tx.UnitsDelta)

	tr := store.Persisted().TranchesOf(2)[0]
	assert.True(t, tr.EntryPrice.Equal(dec("2000")))
}

func TestDeposit_Validation(t *testing.T) {
	_, uc := newLedgerEnv()
	ctx := context.Background()

	tests := []struct {
		name      string
		input     usecase.DepositInput
		errorType error
	}{
		{
			name:      "zero amount",
			input:     usecase.DepositInput{InvestorID: 1, Amount: dec("0"), TotalNAVAfter: dec("100"), Date: day("2024-01-01")},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "negative amount",
			input:     usecase.DepositInput{InvestorID: 1, Amount: dec("-10"), TotalNAVAfter: dec("100"), Date: day("2024-01-01")},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "missing date",
			input:     usecase.DepositInput{InvestorID: 1, Amount: dec("100"), TotalNAVAfter: dec("100")},
			errorType: domain.ErrInvalidDate,
		},
		{
			name:      "unknown investor",
			input:     usecase.DepositInput{InvestorID: 42, Amount: dec("100"), TotalNAVAfter: dec("100"), Date: day("2024-01-01")},
			errorType: domain.ErrInvestorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Deposit(ctx, tt.input)
			assert.ErrorIs(t, err, tt.errorType)
		})
	}
}

func TestWithdraw_ProportionalAcrossTranches(t *testing.T) {
	store := mocks.NewMockLedgerStore()

	l := domain.NewLedger()
	seedInvestor(l, 1, "Alice")
	l.Tranches = []*domain.Tranche{
		{TrancheID: "a", InvestorID: 1, Units: dec("100"), EntryPrice: dec("1000"), HighWaterMark: dec("1000"), InvestedValue: dec("100000"), OriginalInvestedValue: dec("100000"), EntryDate: day("2024-01-01")},
		{TrancheID: "b", InvestorID: 1, Units: dec("50"), EntryPrice: dec("1000"), HighWaterMark: dec("1000"), InvestedValue: dec("50000"), OriginalInvestedValue: dec("50000"), EntryDate: day("2024-02-01")},
	}
	store.Seed(l)

	uc := usecase.NewLedgerUseCase(usecase.NewCoordinator(store, nil), mocks.NewMockIDGenerator(), nil)

	// 150 units at price 1000: withdrawing 50,000 removes a third of each tranche.
	tx, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		InvestorID: 1, Amount: dec("50000"), TotalNAVAfter: dec("100000"), Date: day("2024-03-01"),
	})
	require.NoError(t, err)

	assert.True(t, tx.Amount.Equal(dec("-50000")))
	assert.True(t, tx.UnitsDelta.Equal(dec("-50")))

	persisted := store.Persisted()
	tranches := persisted.TranchesOf(1)
	require.Len(t, tranches, 2)

	wantA, _ := tranches[0].Units.Float64()
	wantB, _ := tranches[1].Units.Float64()
	assert.InDelta(t, 66.6667, wantA, 0.001)
	assert.InDelta(t, 33.3333, wantB, 0.001)

	investedA, _ := tranches[0].InvestedValue.Float64()
	assert.InDelta(t, 66666.7, investedA, 1)
	assert.True(t, tranches[0].OriginalInvestedValue.Equal(dec("100000")), "lifetime baseline must not change")
}

func TestWithdraw_ToleranceBoundary(t *testing.T) {
	newEnvWithHolding := func() (*mocks.MockLedgerStore, *usecase.LedgerUseCase) {
		store := mocks.NewMockLedgerStore()
		l := domain.NewLedger()
		seedInvestor(l, 1, "Alice")
		l.Tranches = []*domain.Tranche{
			{TrancheID: "a", InvestorID: 1, Units: dec("100"), EntryPrice: dec("1000"), HighWaterMark: dec("1000"), InvestedValue: dec("100000"), OriginalInvestedValue: dec("100000"), EntryDate: day("2024-01-01")},
		}
		store.Seed(l)
		return store, usecase.NewLedgerUseCase(usecase.NewCoordinator(store, nil), mocks.NewMockIDGenerator(), nil)
	}

	// Market value is 100,000 at price 1000. Half a percent over is within
	// tolerance and redeems the full holding.
	store, uc := newEnvWithHolding()
	_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		InvestorID: 1, Amount: dec("100500"), TotalNAVAfter: dec("-500"), Date: day("2024-03-01"),
	})
	require.NoError(t, err)
	assert.Empty(t, store.Persisted().TranchesOf(1), "full redemption should prune all tranches")

	// Two percent over is rejected.
	_, uc = newEnvWithHolding()
	_, err = uc.Withdraw(context.Background(), usecase.WithdrawInput{
		InvestorID: 1, Amount: dec("102000"), TotalNAVAfter: dec("-2000"), Date: day("2024-03-01"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// No holding at all is rejected outright.
	_, uc = newLedgerEnv()
	_, err = uc.Withdraw(context.Background(), usecase.WithdrawInput{
		InvestorID: 1, Amount: dec("10"), TotalNAVAfter: dec("100"), Date: day("2024-03-01"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	store, uc := newLedgerEnv()
	ctx := context.Background()

	_, err := uc.Deposit(ctx, usecase.DepositInput{
		InvestorID: 1, Amount: dec("100000000"), TotalNAVAfter: dec("100000000"), Date: day("2024-01-01"),
	})
	require.NoError(t, err)

	// Withdraw the full market value at the same NAV: the ledger returns to
	// its prior unit count within rounding tolerance.
	_, err = uc.Withdraw(ctx, usecase.WithdrawInput{
		InvestorID: 1, Amount: dec("100000000"), TotalNAVAfter: dec("0"), Date: day("2024-01-02"),
	})
	require.NoError(t, err)

	total, _ := store.Persisted().TotalUnits().Float64()
	assert.InDelta(t, 0, total, 0.0001)
}

func TestRecordNAVUpdate(t *testing.T) {
	store, uc := newLedgerEnv()

	tx, err := uc.RecordNAVUpdate(context.Background(), dec("150000000"), day("2024-06-30"))
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeNAVUpdate, tx.Type)
	assert.True(t, tx.Amount.IsZero())
	assert.True(t, tx.UnitsDelta.IsZero())
	assert.True(t, tx.NAVAtTime.Equal(dec("150000000")))

	persisted := store.Persisted()
	nav, ok := persisted.LatestNAV()
	require.True(t, ok)
	assert.True(t, nav.TotalNAV.Equal(dec("150000000")))
	assert.Empty(t, persisted.Tranches, "NAV update must not alter tranches")

	_, err = uc.RecordNAVUpdate(context.Background(), dec("0"), day("2024-06-30"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestUndoTransaction(t *testing.T) {
	t.Run("undo deposit removes tranche", func(t *testing.T) {
		store, uc := newLedgerEnv()
		ctx := context.Background()

		tx, err := uc.Deposit(ctx, usecase.DepositInput{
			InvestorID: 1, Amount: dec("100000000"), TotalNAVAfter: dec("100000000"), Date: day("2024-01-01"),
		})
		require.NoError(t, err)

		require.NoError(t, uc.UndoTransaction(ctx, tx.ID))

		persisted := store.Persisted()
		assert.Empty(t, persisted.Tranches)
		assert.Empty(t, persisted.Transactions)
		assert.Empty(t, persisted.NAVHistory)
	})

	t.Run("undo withdrawal restores units", func(t *testing.T) {
		store, uc := newLedgerEnv()
		ctx := context.Background()

		_, err := uc.Deposit(ctx, usecase.DepositInput{
			InvestorID: 1, Amount: dec("100000000"), TotalNAVAfter: dec("100000000"), Date: day("2024-01-01"),
		})
		require.NoError(t, err)

		tx, err := uc.Withdraw(ctx, usecase.WithdrawInput{
			InvestorID: 1, Amount: dec("50000000"), TotalNAVAfter: dec("50000000"), Date: day("2024-02-01"),
		})
		require.NoError(t, err)

		require.NoError(t, uc.UndoTransaction(ctx, tx.ID))

		units, _ := store.Persisted().InvestorUnits(1).Float64()
		assert.InDelta(t, 100000, units, 0.001)
	})

	t.Run("only the most recent transaction is undoable", func(t *testing.T) {
		_, uc := newLedgerEnv()
		ctx := context.Background()

		first, err := uc.Deposit(ctx, usecase.DepositInput{
			InvestorID: 1, Amount: dec("1000"), TotalNAVAfter: dec("1000"), Date: day("2024-01-01"),
		})
		require.NoError(t, err)

		_, err = uc.RecordNAVUpdate(ctx, dec("2000"), day("2024-01-02"))
		require.NoError(t, err)

		assert.ErrorIs(t, uc.UndoTransaction(ctx, first.ID), domain.ErrNotUndoable)
	})

	t.Run("fee transactions are never undoable", func(t *testing.T) {
		store := mocks.NewMockLedgerStore()
		l := domain.NewLedger()
		seedInvestor(l, 1, "Alice")
		l.Transactions = []*domain.Transaction{
			{ID: "fee-1", InvestorID: 1, Type: domain.TransactionTypeFeeCharged, Amount: dec("-100"), Date: day("2024-01-01")},
		}
		store.Seed(l)

		uc := usecase.NewLedgerUseCase(usecase.NewCoordinator(store, nil), mocks.NewMockIDGenerator(), nil)
		assert.ErrorIs(t, uc.UndoTransaction(context.Background(), "fee-1"), domain.ErrNotUndoable)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, uc := newLedgerEnv()
		assert.ErrorIs(t, uc.UndoTransaction(context.Background(), "missing"), domain.ErrTransactionNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	_, uc := newLedgerEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		nav := decimal.NewFromInt(int64(1000 * (i + 1)))
		_, err := uc.Deposit(ctx, usecase.DepositInput{
			InvestorID: 1, Amount: dec("1000"), TotalNAVAfter: nav, Date: day("2024-01-01").AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
	_, err := uc.Deposit(ctx, usecase.DepositInput{
		InvestorID: 2, Amount: dec("1000"), TotalNAVAfter: dec("4000"), Date: day("2024-02-01"),
	})
	require.NoError(t, err)

	all, err := uc.ListTransactions(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(2), all[0].InvestorID, "most recent first")

	investor := int64(1)
	mine, err := uc.ListTransactions(ctx, &investor, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, tx := range mine {
		assert.Equal(t, investor, tx.InvestorID)
	}
}
