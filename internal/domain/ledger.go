package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the complete persisted state of one fund: investors, tranches,
// transactions, fee records, fee configuration and NAV history. It is loaded
// and saved whole by the store; all mutation happens on a loaded copy under
// the mutation coordinator's lock.
type Ledger struct {
	Investors    []*Investor
	Tranches     []*Tranche
	Transactions []*Transaction
	FeeRecords   []*FeeRecord
	NAVHistory   []NAVSnapshot
	FeeConfig    FeeConfig
}

// NewLedger returns an empty ledger seeded with the fund operator.
func NewLedger() *Ledger {
	return &Ledger{
		Investors: []*Investor{{
			ID:         OperatorID,
			Name:       "Fund Operator",
			JoinDate:   time.Now().UTC(),
			IsOperator: true,
		}},
		FeeConfig: FeeConfig{Overrides: map[int64]FeeOverride{}},
	}
}

// FindInvestor returns the investor with the given ID.
func (l *Ledger) FindInvestor(id int64) (*Investor, error) {
	for _, inv := range l.Investors {
		if inv.ID == id {
			return inv, nil
		}
	}

	return nil, ErrInvestorNotFound
}

// Operator returns the fund operator, or nil if the ledger was never seeded.
func (l *Ledger) Operator() *Investor {
	for _, inv := range l.Investors {
		if inv.IsOperator {
			return inv
		}
	}

	return nil
}

// NextInvestorID returns the next free investor ID. ID 0 is reserved for the
// operator, so regular investors start at 1.
func (l *Ledger) NextInvestorID() int64 {
	var max int64
	for _, inv := range l.Investors {
		if inv.ID > max {
			max = inv.ID
		}
	}

	return max + 1
}

// TotalUnits returns the fund's total outstanding units across all tranches.
func (l *Ledger) TotalUnits() decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.Tranches {
		total = total.Add(t.Units)
	}

	return total
}

// TranchesOf returns the investor's tranches in creation order.
func (l *Ledger) TranchesOf(investorID int64) []*Tranche {
	var out []*Tranche
	for _, t := range l.Tranches {
		if t.InvestorID == investorID {
			out = append(out, t)
		}
	}

	return out
}

// InvestorUnits returns an investor's total units.
func (l *Ledger) InvestorUnits(investorID int64) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.Tranches {
		if t.InvestorID == investorID {
			total = total.Add(t.Units)
		}
	}

	return total
}

// FindTranche returns the tranche with the given ID.
func (l *Ledger) FindTranche(trancheID string) (*Tranche, error) {
	for _, t := range l.Tranches {
		if t.TrancheID == trancheID {
			return t, nil
		}
	}

	return nil, ErrTrancheNotFound
}

// RemoveTranche deletes a tranche, preserving creation order of the rest.
func (l *Ledger) RemoveTranche(trancheID string) {
	for i, t := range l.Tranches {
		if t.TrancheID == trancheID {
			l.Tranches = append(l.Tranches[:i], l.Tranches[i+1:]...)
			return
		}
	}
}

// PruneDust removes tranches whose unit balance fell below UnitEpsilon.
func (l *Ledger) PruneDust() {
	kept := l.Tranches[:0]
	for _, t := range l.Tranches {
		if !t.IsDust() {
			kept = append(kept, t)
		}
	}

	l.Tranches = kept
}

// LastTransaction returns the most recent transaction, or nil for an empty
// ledger.
func (l *Ledger) LastTransaction() *Transaction {
	if len(l.Transactions) == 0 {
		return nil
	}

	return l.Transactions[len(l.Transactions)-1]
}

// FindTransaction returns the transaction with the given ID.
func (l *Ledger) FindTransaction(id string) (*Transaction, error) {
	for _, tx := range l.Transactions {
		if tx.ID == id {
			return tx, nil
		}
	}

	return nil, ErrTransactionNotFound
}

// RemoveTransaction deletes a transaction record. Only the undo path may call
// this; the ledger is otherwise append-only.
func (l *Ledger) RemoveTransaction(id string) {
	for i, tx := range l.Transactions {
		if tx.ID == id {
			l.Transactions = append(l.Transactions[:i], l.Transactions[i+1:]...)
			return
		}
	}
}

// AppendNAV records a NAV snapshot.
func (l *Ledger) AppendNAV(snap NAVSnapshot) {
	l.NAVHistory = append(l.NAVHistory, snap)
}

// PopNAV removes and returns the most recent NAV snapshot.
func (l *Ledger) PopNAV() (NAVSnapshot, bool) {
	if len(l.NAVHistory) == 0 {
		return NAVSnapshot{}, false
	}

	last := l.NAVHistory[len(l.NAVHistory)-1]
	l.NAVHistory = l.NAVHistory[:len(l.NAVHistory)-1]

	return last, true
}

// LatestNAV returns the most recent NAV snapshot.
func (l *Ledger) LatestNAV() (NAVSnapshot, bool) {
	if len(l.NAVHistory) == 0 {
		return NAVSnapshot{}, false
	}

	return l.NAVHistory[len(l.NAVHistory)-1], true
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{
		Investors:    make([]*Investor, len(l.Investors)),
		Tranches:     make([]*Tranche, len(l.Tranches)),
		Transactions: make([]*Transaction, len(l.Transactions)),
		FeeRecords:   make([]*FeeRecord, len(l.FeeRecords)),
		NAVHistory:   append([]NAVSnapshot(nil), l.NAVHistory...),
		FeeConfig:    l.FeeConfig.Clone(),
	}

	for i, inv := range l.Investors {
		c := *inv
		out.Investors[i] = &c
	}
	for i, t := range l.Tranches {
		out.Tranches[i] = t.Clone()
	}
	for i, tx := range l.Transactions {
		c := *tx
		out.Transactions[i] = &c
	}
	for i, fr := range l.FeeRecords {
		c := *fr
		out.FeeRecords[i] = &c
	}

	return out
}
