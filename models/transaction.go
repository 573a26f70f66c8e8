package models

import (
	"time"
)

// TransactionType represents the type of a completed operation
type TransactionType string

const (
	TransactionTypeDeposit       TransactionType = "deposit"
	TransactionTypeWithdrawal    TransactionType = "withdrawal"
	TransactionTypeStake         TransactionType = "stake"
	TransactionTypeUnstake       TransactionType = "unstake"
	TransactionTypeLoan          TransactionType = "loan"
	TransactionTypeLoanRepayment TransactionType = "loan_repayment"
)

// Transaction represents a completed operation in a user's history.
// IDs come from a single process-wide counter shared across all users and
// are strictly increasing within a process lifetime. Records are immutable
// once created and histories are never pruned.
type Transaction struct {
	ID          int64           `json:"id"`
	UserKey     string          `json:"user_key"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
