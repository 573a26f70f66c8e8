package models

import (
	"time"
)

// Account represents a user's ledger account with a balance in the smallest token unit
type Account struct {
	UserKey             string    `json:"user_key"`
	Balance             int64     `json:"balance"`
	StakedAmount        int64     `json:"staked_amount"`
	TotalEarnedStaking  int64     `json:"total_earned_staking"`
	TotalLoaned         int64     `json:"total_loaned"`
	LoanCount           int       `json:"loan_count"`
	LastInterestApplied time.Time `json:"last_interest_applied"`
	TransactionCount    int       `json:"transaction_count"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
}
