package service

import (
	"tokenbank/models"
)

// statsService implements the StatsService interface.
// The projection is derived by scanning the account and staking stores; it
// owns no state of its own beyond the last computed value and never mutates
// the stores it reads.
type statsService struct {
	accounts AccountStore
	staking  StakingStore
	current  models.SystemStats
}

// NewStatsService creates a new stats service
func NewStatsService(accounts AccountStore, staking StakingStore) StatsService {
	return &statsService{
		accounts: accounts,
		staking:  staking,
	}
}

// Recompute rebuilds the statistics from the live stores. It runs after
// every mutating operation; a full scan is acceptable at single-process
// scale.
func (s *statsService) Recompute() {
	stats := models.SystemStats{}

	for _, account := range s.accounts.All() {
		stats.TotalStaked += account.StakedAmount
		stats.TotalLoans += account.TotalLoaned
	}
	stats.TotalUsers = s.accounts.Count()
	stats.TotalValueLocked = stats.TotalStaked

	// Historical field semantics, relied upon downstream: ActiveLoans carries
	// the loaned-value sum and ActiveStakers counts inactive records too.
	stats.ActiveLoans = stats.TotalLoans
	stats.ActiveStakers = s.staking.Count()

	s.current = stats
}

// Current returns the statistics as of the last recompute
func (s *statsService) Current() models.SystemStats {
	return s.current
}
