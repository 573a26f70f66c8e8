package models

// SnapshotVersion identifies the current snapshot layout
const SnapshotVersion = 1

// AccountEntry is one (key, value) pair of the frozen account store
type AccountEntry struct {
	UserKey string  `json:"user_key"`
	Account Account `json:"account"`
}

// StakingEntry is one (key, value) pair of the frozen staking store
type StakingEntry struct {
	UserKey  string          `json:"user_key"`
	Position StakingPosition `json:"position"`
}

// LoanEntry is one (key, value) pair of the frozen loan store; the slice
// keeps the user's loans in id order
type LoanEntry struct {
	UserKey string `json:"user_key"`
	Loans   []Loan `json:"loans"`
}

// TransactionEntry is one (key, value) pair of the frozen transaction log
type TransactionEntry struct {
	UserKey      string        `json:"user_key"`
	Transactions []Transaction `json:"transactions"`
}

// Snapshot is the flat durable representation of the four live stores.
// Entry order within each sequence is not significant across freezes;
// restoring any snapshot produced by a freeze yields content-equal stores.
// Internal counters are not part of the snapshot: loan ids are positional
// and the transaction counter is rebuilt from the restored log.
type Snapshot struct {
	Version      int                `json:"version"`
	Accounts     []AccountEntry     `json:"accounts"`
	Staking      []StakingEntry     `json:"staking"`
	Loans        []LoanEntry        `json:"loans"`
	Transactions []TransactionEntry `json:"transactions"`
}
