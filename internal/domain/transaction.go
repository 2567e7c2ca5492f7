package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger transaction.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdraw    TransactionType = "withdraw"
	TransactionTypeFeeCharged  TransactionType = "fee_charged"
	TransactionTypeFeeReceived TransactionType = "fee_received"
	TransactionTypeNAVUpdate   TransactionType = "nav_update"
)

// Transaction is an immutable append-only ledger entry. Amount is signed:
// withdrawals and fee charges are negative. TrancheID links the transaction to
// the tranche it created or charged, where one exists.
type Transaction struct {
	Date       time.Time
	ID         string
	TrancheID  string
	Type       TransactionType
	InvestorID int64
	Amount     decimal.Decimal
	NAVAtTime  decimal.Decimal
	UnitsDelta decimal.Decimal
}
