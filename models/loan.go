package models

import "time"

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	// LoanStatusDefaulted is declared for future due-date enforcement.
	// No code path currently transitions a loan into this state.
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// Loan represents a collateralized loan. Loans are identified by their
// position in the user's loan list; ids are never reused or compacted.
// Amount is the outstanding repayable amount and is rewritten to
// principal plus interest at repayment time; Principal keeps the original
// disbursed value for audit.
type Loan struct {
	Amount           int64      `json:"amount"`
	Principal        int64      `json:"principal"`
	InterestRate     float64    `json:"interest_rate"`
	StartTime        time.Time  `json:"start_time"`
	DueDate          time.Time  `json:"due_date"`
	CollateralAmount int64      `json:"collateral_amount"`
	Status           LoanStatus `json:"status"`
}

// LoanResult represents the outcome of a loan application (returned to the user)
type LoanResult struct {
	LoanID     int
	Amount     int64
	DueDate    time.Time
	NewBalance int64
}

// RepayResult represents the outcome of a loan repayment (returned to the user)
type RepayResult struct {
	LoanID         int
	TotalRepayment int64
	Interest       int64
	NewBalance     int64
}
