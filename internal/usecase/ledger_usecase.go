package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// LedgerUseCase handles unit issuance and reduction: deposits, withdrawals,
// NAV updates and undo.
type LedgerUseCase struct {
	coord   *Coordinator
	idGen   IDGenerator
	metrics *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. metrics may be nil.
func NewLedgerUseCase(coord *Coordinator, idGen IDGenerator, m *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{coord: coord, idGen: idGen, metrics: m}
}

// DepositInput represents input for a deposit. TotalNAVAfter is the fund's
// reported NAV including the deposited cash.
type DepositInput struct {
	Date          time.Time
	InvestorID    int64
	Amount        decimal.Decimal
	TotalNAVAfter decimal.Decimal
}

// Deposit converts contributed cash into a new tranche of units. The price is
// taken from the pre-deposit state: the deposited cash is excluded from the
// NAV used to price its own units, and the deposit's units are excluded from
// the denominator. The first deposit into an empty fund is priced at
// domain.InitialUnitPrice.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, err
	}

	var tx *domain.Transaction

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		var err error
		tx, err = uc.deposit(l, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsRecorded.Inc()
	}

	return tx, nil
}

func (uc *LedgerUseCase) deposit(l *domain.Ledger, input DepositInput) (*domain.Transaction, error) {
	if _, err := l.FindInvestor(input.InvestorID); err != nil {
		return nil, err
	}

	unitsBefore := l.TotalUnits()

	price := domain.InitialUnitPrice
	if unitsBefore.GreaterThan(decimal.Zero) {
		navBefore := input.TotalNAVAfter.Sub(input.Amount)

		var err error
		price, err = domain.PricePerUnit(navBefore, unitsBefore)
		if err != nil {
			return nil, err
		}
		if !price.IsPositive() {
			return nil, domain.ErrDivisionByZero
		}
	}

	units := input.Amount.Div(price)

	tranche := &domain.Tranche{
		TrancheID:             uc.idGen.Generate(),
		InvestorID:            input.InvestorID,
		EntryDate:             input.Date,
		EntryPrice:            price,
		Units:                 units,
		HighWaterMark:         price,
		OriginalEntryDate:     input.Date,
		OriginalEntryPrice:    price,
		CumulativeFeesPaid:    decimal.Zero,
		InvestedValue:         input.Amount,
		OriginalInvestedValue: input.Amount,
	}
	l.Tranches = append(l.Tranches, tranche)

	tx := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		InvestorID: input.InvestorID,
		Date:       input.Date,
		Type:       domain.TransactionTypeDeposit,
		Amount:     input.Amount,
		NAVAtTime:  input.TotalNAVAfter,
		UnitsDelta: units,
		TrancheID:  tranche.TrancheID,
	}
	l.Transactions = append(l.Transactions, tx)

	l.AppendNAV(domain.NAVSnapshot{
		Date:     input.Date,
		TotalNAV: input.TotalNAVAfter,
		Source:   domain.TransactionTypeDeposit,
	})

	return tx, nil
}

// WithdrawInput represents input for a withdrawal. TotalNAVAfter is the
// fund's reported NAV excluding the withdrawn cash.
type WithdrawInput struct {
	Date          time.Time
	InvestorID    int64
	Amount        decimal.Decimal
	TotalNAVAfter decimal.Decimal
}

// Withdraw redeems cash against the investor's units, reducing all of their
// tranches proportionally in creation order. The amount may exceed the
// computed market value by at most domain.WithdrawalTolerance.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, err
	}

	var tx *domain.Transaction

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		var err error
		tx, err = uc.withdraw(l, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsRecorded.Inc()
	}

	return tx, nil
}

func (uc *LedgerUseCase) withdraw(l *domain.Ledger, input WithdrawInput) (*domain.Transaction, error) {
	if _, err := l.FindInvestor(input.InvestorID); err != nil {
		return nil, err
	}

	investorUnits := l.InvestorUnits(input.InvestorID)
	if !investorUnits.IsPositive() {
		return nil, domain.ErrInsufficientBalance
	}

	navBefore := input.TotalNAVAfter.Add(input.Amount)

	price, err := domain.PricePerUnit(navBefore, l.TotalUnits())
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, domain.ErrDivisionByZero
	}

	one := decimal.NewFromInt(1)
	marketValue := investorUnits.Mul(price)
	allowed := marketValue.Mul(one.Add(domain.WithdrawalTolerance))
	if input.Amount.GreaterThan(allowed) {
		return nil, domain.ErrInsufficientBalance
	}

	unitsToRemove := input.Amount.Div(price)
	if unitsToRemove.GreaterThan(investorUnits) {
		// Within tolerance but over the holding; cap at a full redemption.
		unitsToRemove = investorUnits
	}

	// One removal ratio, applied tranche-by-tranche in creation order, keeps
	// the allocation deterministic and reproducible.
	removalRatio := unitsToRemove.Div(investorUnits)
	keep := one.Sub(removalRatio)
	if keep.IsNegative() {
		keep = decimal.Zero
	}

	for _, t := range l.TranchesOf(input.InvestorID) {
		t.Scale(keep)
	}
	l.PruneDust()

	tx := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		InvestorID: input.InvestorID,
		Date:       input.Date,
		Type:       domain.TransactionTypeWithdraw,
		Amount:     input.Amount.Neg(),
		NAVAtTime:  input.TotalNAVAfter,
		UnitsDelta: unitsToRemove.Neg(),
	}
	l.Transactions = append(l.Transactions, tx)

	l.AppendNAV(domain.NAVSnapshot{
		Date:     input.Date,
		TotalNAV: input.TotalNAVAfter,
		Source:   domain.TransactionTypeWithdraw,
	})

	return tx, nil
}

// RecordNAVUpdate appends a NAV snapshot and its marker transaction. No
// tranche is altered.
func (uc *LedgerUseCase) RecordNAVUpdate(ctx context.Context, totalNAV decimal.Decimal, date time.Time) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(totalNAV); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}

	var tx *domain.Transaction

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		tx = &domain.Transaction{
			ID:         uc.idGen.Generate(),
			InvestorID: domain.OperatorID,
			Date:       date,
			Type:       domain.TransactionTypeNAVUpdate,
			Amount:     decimal.Zero,
			NAVAtTime:  totalNAV,
			UnitsDelta: decimal.Zero,
		}
		l.Transactions = append(l.Transactions, tx)

		l.AppendNAV(domain.NAVSnapshot{
			Date:     date,
			TotalNAV: totalNAV,
			Source:   domain.TransactionTypeNAVUpdate,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.NAVUpdatesRecorded.Inc()
	}

	return tx, nil
}

// UndoTransaction reverses the unit/NAV effect of the ledger's most recent
// transaction and removes its record. Fee transactions are never undoable;
// reversing a fee application spans every investor plus the operator and is
// owned by the fee workflow, not the undo path.
func (uc *LedgerUseCase) UndoTransaction(ctx context.Context, transactionID string) error {
	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		tx, err := l.FindTransaction(transactionID)
		if err != nil {
			return err
		}

		last := l.LastTransaction()
		if last == nil || last.ID != tx.ID {
			return domain.ErrNotUndoable
		}

		switch tx.Type {
		case domain.TransactionTypeDeposit:
			l.RemoveTranche(tx.TrancheID)
			l.PopNAV()

		case domain.TransactionTypeWithdraw:
			unitsRemoved := tx.UnitsDelta.Neg()
			unitsNow := l.InvestorUnits(tx.InvestorID)
			if !unitsNow.IsPositive() {
				// Full redemption pruned every tranche; there is nothing left
				// to rescale back.
				return domain.ErrNotUndoable
			}

			factor := unitsNow.Add(unitsRemoved).Div(unitsNow)
			for _, t := range l.TranchesOf(tx.InvestorID) {
				t.Scale(factor)
			}
			l.PopNAV()

		case domain.TransactionTypeNAVUpdate:
			l.PopNAV()

		default:
			return domain.ErrNotUndoable
		}

		l.RemoveTransaction(tx.ID)

		return nil
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUndone.Inc()
	}

	return nil
}

// ListTransactions returns the ledger's transactions, optionally filtered by
// investor, most recent first, capped at limit.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, investorID *int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []*domain.Transaction

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		for i := len(l.Transactions) - 1; i >= 0 && len(out) < limit; i-- {
			tx := l.Transactions[i]
			if investorID != nil && tx.InvestorID != *investorID {
				continue
			}
			out = append(out, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
