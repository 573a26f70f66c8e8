package models

import "time"

// StakingPosition represents a user's staking position.
// There is at most one position per user; a new stake overwrites the previous
// position rather than merging with it. Amount grows through lazy reward
// compounding; Principal is fixed at stake time and is what the account's
// StakedAmount is credited and debited with.
type StakingPosition struct {
	Amount     int64     `json:"amount"`
	Principal  int64     `json:"principal"`
	StartTime  time.Time `json:"start_time"`
	RewardRate float64   `json:"reward_rate"`
	IsActive   bool      `json:"is_active"`
}

// StakeResult represents the outcome of a stake operation (returned to the user)
type StakeResult struct {
	StakedAmount int64
	NewBalance   int64
}

// UnstakeResult represents the outcome of an unstake operation (returned to the user)
type UnstakeResult struct {
	ReturnedAmount int64
	Earned         int64
	NewBalance     int64
}
