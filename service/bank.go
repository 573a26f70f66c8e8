package service

import (
	"context"
	"sync"

	"tokenbank/models"
)

// Bank is the single entry point for all engine operations. A mutex
// serializes requests so every operation runs to completion before the next
// begins; with preconditions checked before any store mutation, each request
// either fully commits or leaves no trace. Snapshot Save and Load take the
// same mutex, so no request can observe a half-restored store.
type Bank struct {
	mu        sync.Mutex
	ledger    LedgerService
	staking   StakingService
	loans     LoanService
	stats     StatsService
	txlog     TransactionLog
	snapshots SnapshotService
	config    models.SystemConfig
}

// NewBank creates the engine facade over the assembled services
func NewBank(ledger LedgerService, staking StakingService, loans LoanService, stats StatsService, txlog TransactionLog, snapshots SnapshotService, config models.SystemConfig) *Bank {
	return &Bank{
		ledger:    ledger,
		staking:   staking,
		loans:     loans,
		stats:     stats,
		txlog:     txlog,
		snapshots: snapshots,
		config:    config,
	}
}

// GetBalance returns the user's interest-applied balance, creating the
// account on first sight
func (b *Bank) GetBalance(ctx context.Context, userKey string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.GetBalance(ctx, userKey)
}

// Deposit credits amount and returns the new balance
func (b *Bank) Deposit(ctx context.Context, userKey string, amount int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Deposit(ctx, userKey, amount)
}

// Withdraw debits amount and returns the new balance
func (b *Bank) Withdraw(ctx context.Context, userKey string, amount int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Withdraw(ctx, userKey, amount)
}

// Stake opens a staking position
func (b *Bank) Stake(ctx context.Context, userKey string, amount int64) (*models.StakeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staking.Stake(ctx, userKey, amount)
}

// Unstake closes the user's staking position
func (b *Bank) Unstake(ctx context.Context, userKey string) (*models.UnstakeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staking.Unstake(ctx, userKey)
}

// GetStakingInfo returns a reward-refreshed view of the user's position, or
// nil if the user never staked
func (b *Bank) GetStakingInfo(ctx context.Context, userKey string) (*models.StakingPosition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.ledger.GetOrCreate(ctx, userKey); err != nil {
		return nil, err
	}
	return b.staking.GetStakingInfo(ctx, userKey)
}

// ApplyForLoan disburses a loan against staking collateral
func (b *Bank) ApplyForLoan(ctx context.Context, userKey string, amount int64, termDays int) (*models.LoanResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loans.Apply(ctx, userKey, amount, termDays)
}

// RepayLoan settles an active loan in full
func (b *Bank) RepayLoan(ctx context.Context, userKey string, loanID int) (*models.RepayResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loans.Repay(ctx, userKey, loanID)
}

// GetLoanHistory returns the user's loans in id order
func (b *Bank) GetLoanHistory(ctx context.Context, userKey string) ([]models.Loan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.ledger.GetOrCreate(ctx, userKey); err != nil {
		return nil, err
	}
	return b.loans.History(ctx, userKey)
}

// GetAccountInfo returns the full account record with interest applied
func (b *Bank) GetAccountInfo(ctx context.Context, userKey string) (*models.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.GetAccountInfo(ctx, userKey)
}

// GetTransactionHistory returns the user's transaction records in insertion
// order, oldest first. Like every caller-identified request it enters the
// ledger first, so a first-contact user gets an account here too.
func (b *Bank) GetTransactionHistory(ctx context.Context, userKey string) ([]models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.ledger.GetOrCreate(ctx, userKey); err != nil {
		return nil, err
	}
	return b.txlog.History(userKey), nil
}

// GetSystemConfig returns the fixed engine constants
func (b *Bank) GetSystemConfig(ctx context.Context) models.SystemConfig {
	return b.config
}

// GetSystemStats returns the derived statistics as of the last mutation
func (b *Bank) GetSystemStats(ctx context.Context) models.SystemStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats.Current()
}

// SaveSnapshot freezes the stores and persists them. Called at shutdown,
// never concurrently with request processing.
func (b *Bank) SaveSnapshot(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshots.Save(ctx)
}

// LoadSnapshot restores the stores from the durable medium. Called once at
// startup before the first request; returns false on a cold start.
func (b *Bank) LoadSnapshot(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshots.Load(ctx)
}
