package repository

import (
	"tokenbank/models"
)

// AccountStore is the in-memory account store. Access is serialized by the
// Bank facade, so no internal locking is needed.
type AccountStore struct {
	accounts map[string]*models.Account
}

// NewAccountStore creates an empty account store
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*models.Account),
	}
}

// Get retrieves an account by user key, or nil if absent
func (s *AccountStore) Get(userKey string) *models.Account {
	return s.accounts[userKey]
}

// Put inserts or overwrites an account
func (s *AccountStore) Put(account *models.Account) {
	s.accounts[account.UserKey] = account
}

// All returns every account in the store
func (s *AccountStore) All() []*models.Account {
	all := make([]*models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		all = append(all, account)
	}
	return all
}

// Count returns the number of accounts
func (s *AccountStore) Count() int {
	return len(s.accounts)
}

// Entries returns the store contents as flat snapshot pairs
func (s *AccountStore) Entries() []models.AccountEntry {
	entries := make([]models.AccountEntry, 0, len(s.accounts))
	for key, account := range s.accounts {
		entries = append(entries, models.AccountEntry{
			UserKey: key,
			Account: *account,
		})
	}
	return entries
}

// ReplaceAll rebuilds the store from snapshot pairs
func (s *AccountStore) ReplaceAll(entries []models.AccountEntry) {
	s.accounts = make(map[string]*models.Account, len(entries))
	for _, entry := range entries {
		account := entry.Account
		s.accounts[entry.UserKey] = &account
	}
}
