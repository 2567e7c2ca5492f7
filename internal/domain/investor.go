package domain

import "time"

// OperatorID is the reserved investor ID for the fund operator, the entity
// credited with performance-fee units.
const OperatorID int64 = 0

// Investor represents a participant in the pooled fund.
type Investor struct {
	JoinDate   time.Time
	Name       string
	Email      string
	Phone      string
	ID         int64
	IsOperator bool
}
