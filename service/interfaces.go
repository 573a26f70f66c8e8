package service

import (
	"context"
	"time"

	"tokenbank/events"
	"tokenbank/models"
)

// AccountStore defines the interface for the live account store.
// Store access is non-blocking and single-threaded behind the Bank facade,
// so the methods carry no context. Get returns the live record; callers
// mutate it in place within a run-to-completion operation.
type AccountStore interface {
	// Get retrieves an account by user key, or nil if absent
	Get(userKey string) *models.Account

	// Put inserts or overwrites an account
	Put(account *models.Account)

	// All returns every account in the store
	All() []*models.Account

	// Count returns the number of accounts
	Count() int

	// Entries returns the store contents as flat snapshot pairs
	Entries() []models.AccountEntry

	// ReplaceAll rebuilds the store from snapshot pairs
	ReplaceAll(entries []models.AccountEntry)
}

// StakingStore defines the interface for the live staking position store
type StakingStore interface {
	// Get retrieves a user's position, or nil if the user never staked
	Get(userKey string) *models.StakingPosition

	// Put inserts or overwrites a user's position
	Put(userKey string, position *models.StakingPosition)

	// Count returns the number of staking records, active or not
	Count() int

	// Entries returns the store contents as flat snapshot pairs
	Entries() []models.StakingEntry

	// ReplaceAll rebuilds the store from snapshot pairs
	ReplaceAll(entries []models.StakingEntry)
}

// LoanStore defines the interface for the live per-user loan sequences.
// A loan id is the loan's position in its user's sequence; ids are never
// reused or compacted.
type LoanStore interface {
	// Append adds a loan to the user's sequence and returns its id
	Append(userKey string, loan *models.Loan) int

	// Get retrieves a loan by id, or nil if the id is out of range
	Get(userKey string, loanID int) *models.Loan

	// GetByUser returns the user's loans in id order
	GetByUser(userKey string) []*models.Loan

	// Entries returns the store contents as flat snapshot pairs
	Entries() []models.LoanEntry

	// ReplaceAll rebuilds the store from snapshot pairs
	ReplaceAll(entries []models.LoanEntry)
}

// TransactionLog defines the interface for the append-only transaction log.
// The log owns the process-wide transaction id counter; ids are strictly
// increasing across all users within a process lifetime.
type TransactionLog interface {
	// Append creates the next transaction record for the user
	Append(userKey string, txType models.TransactionType, amount int64, description string, now time.Time) *models.Transaction

	// History returns the user's records in insertion order, oldest first
	History(userKey string) []models.Transaction

	// Entries returns the log contents as flat snapshot pairs
	Entries() []models.TransactionEntry

	// ReplaceAll rebuilds the log from snapshot pairs and resumes the id
	// counter after the highest restored id
	ReplaceAll(entries []models.TransactionEntry)
}

// SnapshotStore defines the interface for the durable snapshot medium
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one
	Save(ctx context.Context, snapshot *models.Snapshot) error

	// Load reads the most recent snapshot, or nil if none exists
	Load(ctx context.Context) (*models.Snapshot, error)
}

// Clock is the engine's only source of wall-clock time
type Clock interface {
	// Now returns the current time; never decreasing within a process lifetime
	Now() time.Time
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// StatsRecomputer is the recompute trigger fired after every mutating operation
type StatsRecomputer interface {
	Recompute()
}

// LedgerService defines the interface for account balance operations
type LedgerService interface {
	// GetOrCreate returns the user's account, creating it zeroed on first
	// sight, with all pending interest applied and persisted
	GetOrCreate(ctx context.Context, userKey string) (*models.Account, error)

	// GetBalance returns the interest-applied balance
	GetBalance(ctx context.Context, userKey string) (int64, error)

	// Deposit credits amount and returns the new balance
	Deposit(ctx context.Context, userKey string, amount int64) (int64, error)

	// Withdraw debits amount and returns the new balance
	Withdraw(ctx context.Context, userKey string, amount int64) (int64, error)

	// GetAccountInfo returns the full account record with interest applied
	GetAccountInfo(ctx context.Context, userKey string) (*models.Account, error)
}

// StakingService defines the interface for staking operations
type StakingService interface {
	// Stake opens a position, debiting the account balance
	Stake(ctx context.Context, userKey string, amount int64) (*models.StakeResult, error)

	// Unstake closes the position and credits the compounded amount
	Unstake(ctx context.Context, userKey string) (*models.UnstakeResult, error)

	// GetStakingInfo returns a reward-refreshed view of the position, or nil
	// if the user never staked. The stored position is not modified.
	GetStakingInfo(ctx context.Context, userKey string) (*models.StakingPosition, error)
}

// LoanService defines the interface for loan operations
type LoanService interface {
	// Apply disburses a loan against the user's staking collateral
	Apply(ctx context.Context, userKey string, amount int64, termDays int) (*models.LoanResult, error)

	// Repay settles an active loan in full, principal plus simple interest
	Repay(ctx context.Context, userKey string, loanID int) (*models.RepayResult, error)

	// History returns the user's loans in id order
	History(ctx context.Context, userKey string) ([]models.Loan, error)
}

// StatsService defines the interface for the derived system statistics
type StatsService interface {
	StatsRecomputer

	// Current returns the statistics as of the last recompute
	Current() models.SystemStats
}

// SnapshotService defines the interface for freezing and restoring the four
// live stores. Save and Load run only at process lifecycle boundaries, never
// concurrently with request processing.
type SnapshotService interface {
	// Freeze produces the flat durable representation of the live stores
	Freeze() *models.Snapshot

	// Restore rebuilds the live stores from a snapshot
	Restore(snapshot *models.Snapshot) error

	// Save freezes the stores and writes the result to the durable medium
	Save(ctx context.Context) error

	// Load reads the durable medium and restores the stores; returns false
	// if no snapshot exists (cold start)
	Load(ctx context.Context) (bool, error)
}
