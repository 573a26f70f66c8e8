package repository

import (
	"tokenbank/models"
)

// StakingStore is the in-memory staking position store. At most one position
// exists per user; a new stake overwrites the old position entirely.
type StakingStore struct {
	positions map[string]*models.StakingPosition
}

// NewStakingStore creates an empty staking store
func NewStakingStore() *StakingStore {
	return &StakingStore{
		positions: make(map[string]*models.StakingPosition),
	}
}

// Get retrieves a user's position, or nil if the user never staked
func (s *StakingStore) Get(userKey string) *models.StakingPosition {
	return s.positions[userKey]
}

// Put inserts or overwrites a user's position
func (s *StakingStore) Put(userKey string, position *models.StakingPosition) {
	s.positions[userKey] = position
}

// Count returns the number of staking records, active or not
func (s *StakingStore) Count() int {
	return len(s.positions)
}

// Entries returns the store contents as flat snapshot pairs
func (s *StakingStore) Entries() []models.StakingEntry {
	entries := make([]models.StakingEntry, 0, len(s.positions))
	for key, position := range s.positions {
		entries = append(entries, models.StakingEntry{
			UserKey:  key,
			Position: *position,
		})
	}
	return entries
}

// ReplaceAll rebuilds the store from snapshot pairs
func (s *StakingStore) ReplaceAll(entries []models.StakingEntry) {
	s.positions = make(map[string]*models.StakingPosition, len(entries))
	for _, entry := range entries {
		position := entry.Position
		s.positions[entry.UserKey] = &position
	}
}
