package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"tokenbank/events"
	"tokenbank/models"

	log "github.com/sirupsen/logrus"
)

// loanService implements the LoanService interface
type loanService struct {
	ledger       LedgerService
	staking      StakingStore
	loans        LoanStore
	txlog        TransactionLog
	stats        StatsRecomputer
	publisher    EventPublisher
	clock        Clock
	interestRate float64
	minLoan      int64
	maxRatio     float64
}

// NewLoanService creates a new loan service
func NewLoanService(ledger LedgerService, staking StakingStore, loans LoanStore, txlog TransactionLog, stats StatsRecomputer, publisher EventPublisher, clock Clock, interestRate float64, minLoan int64, maxRatio float64) LoanService {
	return &loanService{
		ledger:       ledger,
		staking:      staking,
		loans:        loans,
		txlog:        txlog,
		stats:        stats,
		publisher:    publisher,
		clock:        clock,
		interestRate: interestRate,
		minLoan:      minLoan,
		maxRatio:     maxRatio,
	}
}

// Apply disburses a loan backed by the user's staking position. The
// collateral amount recorded on the loan is a point-in-time snapshot of the
// reward-refreshed staking amount; it is not re-validated afterward, and
// nothing prevents the user from unstaking while the loan is outstanding.
func (s *loanService) Apply(ctx context.Context, userKey string, amount int64, termDays int) (*models.LoanResult, error) {
	if amount < s.minLoan {
		return nil, fmt.Errorf("minimum loan amount is %d", s.minLoan)
	}

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
	refreshPosition(position, now)

	maxLoanAmount := floorToTokens(float64(position.Amount) * s.maxRatio)
	if amount > maxLoanAmount {
		return nil, fmt.Errorf("loan amount exceeds maximum of %d (%.0f%% of staked amount)", maxLoanAmount, s.maxRatio*100)
	}

	loan := &models.Loan{
		Amount:           amount,
		Principal:        amount,
		InterestRate:     s.interestRate,
		StartTime:        now,
		DueDate:          now.Add(time.Duration(termDays) * 24 * time.Hour),
		CollateralAmount: position.Amount,
		Status:           models.LoanStatusActive,
	}
	loanID := s.loans.Append(userKey, loan)

	account.Balance = saturatingAdd(account.Balance, amount)
	account.TotalLoaned = saturatingAdd(account.TotalLoaned, amount)
	account.LoanCount++

	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeLoan, amount,
		fmt.Sprintf("loan %d disbursed for %d days", loanID, termDays), now)

	s.publisher.Publish(events.LoanCreatedEvent{
		UserKey:    userKey,
		LoanID:     loanID,
		Amount:     amount,
		Collateral: loan.CollateralAmount,
	})

	log.WithFields(log.Fields{
		"userKey":    userKey,
		"loanID":     loanID,
		"amount":     amount,
		"collateral": loan.CollateralAmount,
	}).Info("Loan disbursed")

	return &models.LoanResult{
		LoanID:     loanID,
		Amount:     amount,
		DueDate:    loan.DueDate,
		NewBalance: account.Balance,
	}, nil
}

// Repay settles an active loan in full. Interest is simple, not compound:
// principal times rate times whole elapsed days, recomputed fresh from the
// loan's start time. Only the status check prevents a loan from being repaid
// twice.
func (s *loanService) Repay(ctx context.Context, userKey string, loanID int) (*models.RepayResult, error) {
	account, err := s.ledger.GetOrCreate(ctx, userKey)
	if err != nil {
		return nil, err
	}

	if len(s.loans.GetByUser(userKey)) == 0 {
		return nil, fmt.Errorf("no loans found")
	}

	loan := s.loans.Get(userKey, loanID)
	if loan == nil {
		return nil, fmt.Errorf("invalid loan id")
	}
	if loan.Status != models.LoanStatusActive {
		return nil, fmt.Errorf("loan is not active")
	}

	now := s.clock.Now()
	elapsedDays := math.Floor(now.Sub(loan.StartTime).Seconds() / secondsPerDay)
	interest := floorToTokens(float64(loan.Principal) * loan.InterestRate * elapsedDays)
	totalRepayment := saturatingAdd(loan.Principal, interest)

	if account.Balance < totalRepayment {
		return nil, fmt.Errorf("insufficient balance: have %d, need %d", account.Balance, totalRepayment)
	}

	account.Balance -= totalRepayment
	loan.Status = models.LoanStatusCompleted
	loan.Amount = totalRepayment

	RecordTransaction(account, s.txlog, s.stats, models.TransactionTypeLoanRepayment, totalRepayment,
		fmt.Sprintf("loan %d repaid (%d interest)", loanID, interest), now)

	s.publisher.Publish(events.LoanRepaidEvent{
		UserKey:        userKey,
		LoanID:         loanID,
		TotalRepayment: totalRepayment,
	})

	log.WithFields(log.Fields{
		"userKey":  userKey,
		"loanID":   loanID,
		"repaid":   totalRepayment,
		"interest": interest,
	}).Info("Loan repaid")

	return &models.RepayResult{
		LoanID:         loanID,
		TotalRepayment: totalRepayment,
		Interest:       interest,
		NewBalance:     account.Balance,
	}, nil
}

// History returns copies of the user's loans in id order
func (s *loanService) History(ctx context.Context, userKey string) ([]models.Loan, error) {
	stored := s.loans.GetByUser(userKey)
	history := make([]models.Loan, 0, len(stored))
	for _, loan := range stored {
		history = append(history, *loan)
	}
	return history, nil
}
