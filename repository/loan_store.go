package repository

import (
	"tokenbank/models"
)

// LoanStore is the in-memory per-user loan sequences. A loan's id is its
// position in the user's sequence; ids are never reused or compacted, and
// loans are never removed.
type LoanStore struct {
	loans map[string][]*models.Loan
}

// NewLoanStore creates an empty loan store
func NewLoanStore() *LoanStore {
	return &LoanStore{
		loans: make(map[string][]*models.Loan),
	}
}

// Append adds a loan to the user's sequence and returns its id
func (s *LoanStore) Append(userKey string, loan *models.Loan) int {
	s.loans[userKey] = append(s.loans[userKey], loan)
	return len(s.loans[userKey]) - 1
}

// Get retrieves a loan by id, or nil if the id is out of range
func (s *LoanStore) Get(userKey string, loanID int) *models.Loan {
	seq := s.loans[userKey]
	if loanID < 0 || loanID >= len(seq) {
		return nil
	}
	return seq[loanID]
}

// GetByUser returns the user's loans in id order
func (s *LoanStore) GetByUser(userKey string) []*models.Loan {
	return s.loans[userKey]
}

// Entries returns the store contents as flat snapshot pairs
func (s *LoanStore) Entries() []models.LoanEntry {
	entries := make([]models.LoanEntry, 0, len(s.loans))
	for key, seq := range s.loans {
		loans := make([]models.Loan, 0, len(seq))
		for _, loan := range seq {
			loans = append(loans, *loan)
		}
		entries = append(entries, models.LoanEntry{
			UserKey: key,
			Loans:   loans,
		})
	}
	return entries
}

// ReplaceAll rebuilds the store from snapshot pairs
func (s *LoanStore) ReplaceAll(entries []models.LoanEntry) {
	s.loans = make(map[string][]*models.Loan, len(entries))
	for _, entry := range entries {
		seq := make([]*models.Loan, 0, len(entry.Loans))
		for i := range entry.Loans {
			loan := entry.Loans[i]
			seq = append(seq, &loan)
		}
		s.loans[entry.UserKey] = seq
	}
}
