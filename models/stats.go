package models

// SystemStats is a derived projection over the account and staking stores.
// It is recomputed after every mutating operation and is never mutated
// independently.
//
// Two fields keep their historical meaning even though the names suggest
// otherwise: ActiveLoans carries the sum of all principal ever loaned (the
// same value as TotalLoans, a money amount rather than a count), and
// ActiveStakers counts every staking record including deactivated ones.
// Downstream consumers depend on these literal values.
type SystemStats struct {
	TotalStaked      int64 `json:"total_staked"`
	TotalLoans       int64 `json:"total_loans"`
	TotalUsers       int   `json:"total_users"`
	TotalValueLocked int64 `json:"total_value_locked"`
	ActiveLoans      int64 `json:"active_loans"`
	ActiveStakers    int   `json:"active_stakers"`
}

// SystemConfig holds the fixed engine constants exposed to callers
type SystemConfig struct {
	InterestRate      float64 `json:"interest_rate"`
	StakingRewardRate float64 `json:"staking_reward_rate"`
	LoanInterestRate  float64 `json:"loan_interest_rate"`
	MinStakeAmount    int64   `json:"min_stake_amount"`
	MinLoanAmount     int64   `json:"min_loan_amount"`
	MaxLoanRatio      float64 `json:"max_loan_ratio"`
}
