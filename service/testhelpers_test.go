package service

import (
	"time"

	"tokenbank/events"
	"tokenbank/repository"
)

// fakeClock is a manually advanced Clock for deterministic interest math
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// nopPublisher discards events in tests that do not assert on them
type nopPublisher struct{}

func (nopPublisher) Publish(event events.Event) {}

// testFixture wires the full service stack over real in-memory stores
type testFixture struct {
	clock    *fakeClock
	accounts *repository.AccountStore
	staking  *repository.StakingStore
	loans    *repository.LoanStore
	txlog    *repository.TransactionStore
	stats    StatsService
	ledger   LedgerService
	staker   StakingService
	loaner   LoanService
}

func newTestFixture() *testFixture {
	clock := newFakeClock()
	accounts := repository.NewAccountStore()
	staking := repository.NewStakingStore()
	loans := repository.NewLoanStore()
	txlog := repository.NewTransactionStore()

	stats := NewStatsService(accounts, staking)
	ledger := NewLedgerService(accounts, txlog, stats, nopPublisher{}, clock, 0.05)
	staker := NewStakingService(ledger, staking, txlog, stats, nopPublisher{}, clock, 0.08, 1000)
	loaner := NewLoanService(ledger, staking, loans, txlog, stats, nopPublisher{}, clock, 0.12, 500, 0.7)

	return &testFixture{
		clock:    clock,
		accounts: accounts,
		staking:  staking,
		loans:    loans,
		txlog:    txlog,
		stats:    stats,
		ledger:   ledger,
		staker:   staker,
		loaner:   loaner,
	}
}
