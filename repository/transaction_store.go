package repository

import (
	"time"

	"tokenbank/models"
)

// TransactionStore is the in-memory append-only transaction log. It owns the
// process-wide transaction id counter: ids are strictly increasing across
// all users within a process lifetime. The counter itself is not part of any
// snapshot; a restore resumes it after the highest restored id, so ids stay
// monotonic within the new process (continuity of the raw counter across
// restarts is not preserved).
type TransactionStore struct {
	transactions map[string][]models.Transaction
	nextID       int64
}

// NewTransactionStore creates an empty transaction log
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[string][]models.Transaction),
		nextID:       1,
	}
}

// Append creates the next transaction record for the user
func (s *TransactionStore) Append(userKey string, txType models.TransactionType, amount int64, description string, now time.Time) *models.Transaction {
	tx := models.Transaction{
		ID:          s.nextID,
		UserKey:     userKey,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}
	s.nextID++
	s.transactions[userKey] = append(s.transactions[userKey], tx)
	return &tx
}

// History returns a copy of the user's records in insertion order, oldest first
func (s *TransactionStore) History(userKey string) []models.Transaction {
	stored := s.transactions[userKey]
	history := make([]models.Transaction, len(stored))
	copy(history, stored)
	return history
}

// Entries returns the log contents as flat snapshot pairs
func (s *TransactionStore) Entries() []models.TransactionEntry {
	entries := make([]models.TransactionEntry, 0, len(s.transactions))
	for key, txs := range s.transactions {
		list := make([]models.Transaction, len(txs))
		copy(list, txs)
		entries = append(entries, models.TransactionEntry{
			UserKey:      key,
			Transactions: list,
		})
	}
	return entries
}

// ReplaceAll rebuilds the log from snapshot pairs and resumes the id counter
// after the highest restored id
func (s *TransactionStore) ReplaceAll(entries []models.TransactionEntry) {
	s.transactions = make(map[string][]models.Transaction, len(entries))
	s.nextID = 1
	for _, entry := range entries {
		list := make([]models.Transaction, len(entry.Transactions))
		copy(list, entry.Transactions)
		s.transactions[entry.UserKey] = list
		for _, tx := range list {
			if tx.ID >= s.nextID {
				s.nextID = tx.ID + 1
			}
		}
	}
}
