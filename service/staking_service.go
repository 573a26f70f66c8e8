package service

import (
	"context"
	"fmt"
	"time"

	"tokenbank/events"
	"tokenbank/models"

	log "github.com/sirupsen/logrus"
)

// stakingService implements the StakingService interface
type stakingService struct {
	ledger     LedgerService
	staking    StakingStore
	txlog      TransactionLog
	stats      StatsRecomputer
	publisher  EventPublisher
	clock      Clock
	rewardRate float64
	minStake   int64
}

// NewStakingService creates a new staking service
func NewStakingService(ledger LedgerService, staking StakingStore, txlog TransactionLog, stats StatsRecomputer, publisher EventPublisher, clock Clock, rewardRate float64, minStake int64) StakingService {
	return &stakingService{
		ledger:     ledger,
		staking:    staking,
		txlog:      txlog,
		stats:      stats,
		publisher:  publisher,
		clock:      clock,
		rewardRate: rewardRate,
		minStake:   minStake,
	}
}

// Stake opens a staking position for the user. Any previous position is
// overwritten, not merged; a deactivated position survives only until the
// next stake.
func (s *stakingService) Stake(ctx context.Context, userKey string, amount int64) (*models.StakeResult, error) {
	if amount < s.minStake {
		return nil, fmt.Errorf("minimum staking amount is %d", s.minStake)
	}

	account, err := s.ledger.GetOrCreate(ctx, userKey)
	if err != nil {
		return nil, err
	}

	if amount > account.Balance {
		return nil, fmt.Errorf("insufficient balance: have %d, need %d", account.Balance, amount)
	}

	now := s.clock.Now()

	account.Balance -= amount
	account.StakedAmount += amount

	s.staking.Put(userKey, &models.StakingPosition{
		Amount:     amount,
		Principal:  amount,
		StartTime:  now,
		RewardRate: s.rewardRate,
		IsActive:   true,
	})

	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeStake, amount,
		fmt.Sprintf("staked %d tokens at %.0f%% daily reward", amount, s.rewardRate*100), now)

	s.publisher.Publish(events.StakeCreatedEvent{UserKey: userKey, Amount: amount})

	log.WithFields(log.Fields{
		"userKey": userKey,
		"amount":  amount,
	}).Info("Staking position opened")

	return &models.StakeResult{
		StakedAmount: amount,
		NewBalance:   account.Balance,
	}, nil
}

// Unstake closes the user's position. The compounded amount is credited to
// the balance; the account's StakedAmount is reduced by the original
// principal only, never by the grown amount. The position is deactivated and
// retained as history.
func (s *stakingService) Unstake(ctx context.Context, userKey string) (*models.UnstakeResult, error) {
	account, err := s.ledger.GetOrCreate(ctx, userKey)
	if err != nil {
		return nil, err
	}

	position := s.staking.Get(userKey)
	if position == nil {
		return nil, fmt.Errorf("no active staking found")
	}
	if !position.IsActive {
		return nil, fmt.Errorf("staking is not active")
	}

	now := s.clock.Now()

	finalAmount := compoundAmount(position.Amount, position.RewardRate, now.Sub(position.StartTime))
	earned := finalAmount - position.Principal

	account.Balance = saturatingAdd(account.Balance, finalAmount)
	account.StakedAmount -= position.Principal
	account.TotalEarnedStaking = saturatingAdd(account.TotalEarnedStaking, earned)

	position.Amount = finalAmount
	position.IsActive = false

	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeUnstake, finalAmount,
		fmt.Sprintf("unstaked %d tokens (%d earned)", finalAmount, earned), now)

	s.publisher.Publish(events.StakeReleasedEvent{
		UserKey:        userKey,
		ReturnedAmount: finalAmount,
		Earned:         earned,
	})

	log.WithFields(log.Fields{
		"userKey": userKey,
		"amount":  finalAmount,
		"earned":  earned,
	}).Info("Staking position closed")

	return &models.UnstakeResult{
		ReturnedAmount: finalAmount,
		Earned:         earned,
		NewBalance:     account.Balance,
	}, nil
}

// GetStakingInfo returns a reward-refreshed copy of the user's position.
// This is a pure read: the stored position keeps its last persisted amount
// and start time.
func (s *stakingService) GetStakingInfo(ctx context.Context, userKey string) (*models.StakingPosition, error) {
	position := s.staking.Get(userKey)
	if position == nil {
		return nil, nil
	}

	view := *position
	if view.IsActive {
		view.Amount = compoundAmount(view.Amount, view.RewardRate, s.clock.Now().Sub(view.StartTime))
	}
	return &view, nil
}

// refreshPosition persists pending reward compounding on an active position.
// Consuming operations (loan collateral checks) use this so the committed
// amount matches what they validated against. The start time moves forward
// with the growth it accounts for, keeping later refreshes from compounding
// the same interval twice.
func refreshPosition(position *models.StakingPosition, now time.Time) {
	if !position.IsActive {
		return
	}
	position.Amount = compoundAmount(position.Amount, position.RewardRate, now.Sub(position.StartTime))
	position.StartTime = now
}
