package service

import (
	"context"
	"fmt"

	"tokenbank/events"
	"tokenbank/models"

	log "github.com/sirupsen/logrus"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	accounts     AccountStore
	txlog        TransactionLog
	stats        StatsRecomputer
	publisher    EventPublisher
	clock        Clock
	interestRate float64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accounts AccountStore, txlog TransactionLog, stats StatsRecomputer, publisher EventPublisher, clock Clock, interestRate float64) LedgerService {
	return &ledgerService{
		accounts:     accounts,
		txlog:        txlog,
		stats:        stats,
		publisher:    publisher,
		clock:        clock,
		interestRate: interestRate,
	}
}

// GetOrCreate returns the account for userKey, creating it on first sight.
// Pending balance interest is applied and persisted before the record is
// returned, so every caller sees an up-to-date balance.
func (s *ledgerService) GetOrCreate(ctx context.Context, userKey string) (*models.Account, error) {
	if userKey == "" {
		return nil, fmt.Errorf("user key must not be empty")
	}

	now := s.clock.Now()

	account := s.accounts.Get(userKey)
	if account == nil {
		account = &models.Account{
			UserKey:             userKey,
			LastInterestApplied: now,
			IsActive:            true,
			CreatedAt:           now,
		}
		s.accounts.Put(account)
		s.stats.Recompute()
		s.publisher.Publish(events.AccountCreatedEvent{UserKey: userKey})

		log.WithFields(log.Fields{
			"userKey": userKey,
		}).Info("Created new account")

		return account, nil
	}

	applyAccountInterest(account, s.interestRate, now)
	return account, nil
}

// GetBalance returns the interest-applied balance
func (s *ledgerService) GetBalance(ctx context.Context, userKey string) (int64, error) {
	account, err := s.GetOrCreate(ctx, userKey)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Deposit credits amount to the user's balance
func (s *ledgerService) Deposit(ctx context.Context, userKey string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("deposit amount must be positive")
	}

	account, err := s.GetOrCreate(ctx, userKey)
	if err != nil {
		return 0, err
	}

	oldBalance := account.Balance
	account.Balance = saturatingAdd(account.Balance, amount)

	now := s.clock.Now()
	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeDeposit, amount,
		fmt.Sprintf("deposit of %d tokens", amount), now)

	s.publisher.Publish(events.BalanceChangeEvent{
		UserKey:         userKey,
		OldBalance:      oldBalance,
		NewBalance:      account.Balance,
		TransactionType: models.TransactionTypeDeposit,
		ChangeAmount:    amount,
	})

	return account.Balance, nil
}

// Withdraw debits amount from the user's balance. Pending interest is applied
// first, so a withdrawal can succeed against balance grown in the same call.
func (s *ledgerService) Withdraw(ctx context.Context, userKey string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("withdrawal amount must be positive")
	}

	account, err := s.GetOrCreate(ctx, userKey)
	if err != nil {
		return 0, err
	}

	if amount > account.Balance {
		return 0, fmt.Errorf("insufficient funds: have %d, need %d", account.Balance, amount)
	}

	oldBalance := account.Balance
	account.Balance -= amount

	now := s.clock.Now()
	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeWithdrawal, amount,
		fmt.Sprintf("withdrawal of %d tokens", amount), now)

	s.publisher.Publish(events.BalanceChangeEvent{
		UserKey:         userKey,
		OldBalance:      oldBalance,
		NewBalance:      account.Balance,
		TransactionType: models.TransactionTypeWithdrawal,
		ChangeAmount:    -amount,
	})

	return account.Balance, nil
}

// GetAccountInfo returns the full account record with interest applied
func (s *ledgerService) GetAccountInfo(ctx context.Context, userKey string) (*models.Account, error) {
	return s.GetOrCreate(ctx, userKey)
}
