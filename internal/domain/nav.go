package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NAVSnapshot is one point in the fund's NAV history. Source records which
// event reported the NAV (deposit, withdraw, nav_update).
type NAVSnapshot struct {
	Date     time.Time
	Source   TransactionType
	TotalNAV decimal.Decimal
}
