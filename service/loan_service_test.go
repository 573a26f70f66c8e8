package service

import (
	"context"
	"testing"
	"time"

	"tokenbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stakeForLoan(t *testing.T, f *testFixture, userKey string, amount int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.ledger.Deposit(ctx, userKey, amount)
	require.NoError(t, err)
	_, err = f.staker.Stake(ctx, userKey, amount)
	require.NoError(t, err)
}

func TestLoanService_Apply(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	result, err := f.loaner.Apply(ctx, "user-1", 700, 30)

	require.NoError(t, err)
	assert.Equal(t, 0, result.LoanID)
	assert.Equal(t, int64(700), result.Amount)
	assert.Equal(t, f.clock.Now().Add(30*24*time.Hour), result.DueDate)
	assert.Equal(t, int64(700), result.NewBalance)

	account := f.accounts.Get("user-1")
	assert.Equal(t, int64(700), account.TotalLoaned)
	assert.Equal(t, 1, account.LoanCount)

	loan := f.loans.Get("user-1", 0)
	require.NotNil(t, loan)
	assert.Equal(t, models.LoanStatusActive, loan.Status)
	assert.Equal(t, int64(1000), loan.CollateralAmount)
}

func TestLoanService_Apply_BelowMinimum(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 499, 30)

	assert.EqualError(t, err, "minimum loan amount is 500")
}

func TestLoanService_Apply_NoStaking(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)

	assert.EqualError(t, err, "no active staking found")
}

func TestLoanService_Apply_InactiveStaking(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)
	_, err := f.staker.Unstake(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.loaner.Apply(ctx, "user-1", 700, 30)

	assert.EqualError(t, err, "staking is not active")
}

func TestLoanService_Apply_ExceedsCollateralRatio(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 701, 30)

	assert.EqualError(t, err, "loan amount exceeds maximum of 700 (70% of staked amount)")
}

func TestLoanService_Apply_CeilingUsesRefreshedCollateral(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	// After a day the position is worth 1080, lifting the ceiling to 756
	f.clock.Advance(24 * time.Hour)
	result, err := f.loaner.Apply(ctx, "user-1", 756, 30)

	require.NoError(t, err)
	assert.Equal(t, int64(756), result.Amount)

	// The refresh is persisted on the position
	position := f.staking.Get("user-1")
	assert.Equal(t, int64(1080), position.Amount)
	assert.Equal(t, f.clock.Now(), position.StartTime)
}

func TestLoanService_Repay(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	f.clock.Advance(10 * 24 * time.Hour)

	// Top up so the repayment clears: the loaned 700 grows to 1140 over
	// ten days, plus 900 deposited here
	_, err = f.ledger.Deposit(ctx, "user-1", 900)
	require.NoError(t, err)

	result, err := f.loaner.Repay(ctx, "user-1", 0)

	require.NoError(t, err)
	assert.Equal(t, 0, result.LoanID)
	assert.Equal(t, int64(840), result.Interest)
	assert.Equal(t, int64(1540), result.TotalRepayment)
	assert.Equal(t, int64(500), result.NewBalance)

	loan := f.loans.Get("user-1", 0)
	assert.Equal(t, models.LoanStatusCompleted, loan.Status)
	assert.Equal(t, int64(1540), loan.Amount)
	assert.Equal(t, int64(700), loan.Principal)
}

func TestLoanService_Repay_SameDay(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	result, err := f.loaner.Repay(ctx, "user-1", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Interest)
	assert.Equal(t, int64(700), result.TotalRepayment)
}

func TestLoanService_Repay_PartialDaysFloored(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	// 1.5 elapsed days charge one whole day of interest
	f.clock.Advance(36 * time.Hour)
	_, err = f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	result, err := f.loaner.Repay(ctx, "user-1", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(84), result.Interest)
	assert.Equal(t, int64(784), result.TotalRepayment)
}

func TestLoanService_Repay_NoLoans(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.loaner.Repay(ctx, "user-1", 0)

	assert.EqualError(t, err, "no loans found")
}

func TestLoanService_Repay_InvalidLoanID(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	_, err = f.loaner.Repay(ctx, "user-1", 5)

	assert.EqualError(t, err, "invalid loan id")
}

func TestLoanService_Repay_Twice(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)
	_, err = f.loaner.Repay(ctx, "user-1", 0)
	require.NoError(t, err)

	_, err = f.loaner.Repay(ctx, "user-1", 0)

	assert.EqualError(t, err, "loan is not active")
}

func TestLoanService_Repay_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	// Burn the disbursed amount so the repayment cannot clear
	_, err = f.ledger.Withdraw(ctx, "user-1", 700)
	require.NoError(t, err)

	_, err = f.loaner.Repay(ctx, "user-1", 0)

	assert.EqualError(t, err, "insufficient balance: have 0, need 700")
}

func TestLoanService_Unstake_WithOutstandingLoan(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 1000)

	_, err := f.loaner.Apply(ctx, "user-1", 700, 30)
	require.NoError(t, err)

	// Nothing ties the collateral down after disbursal; the stake can be
	// released while the loan is still outstanding
	result, err := f.staker.Unstake(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.ReturnedAmount)

	loan := f.loans.Get("user-1", 0)
	assert.Equal(t, models.LoanStatusActive, loan.Status)
}

func TestLoanService_History(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	stakeForLoan(t, f, "user-1", 2000)

	first, err := f.loaner.Apply(ctx, "user-1", 500, 10)
	require.NoError(t, err)
	second, err := f.loaner.Apply(ctx, "user-1", 600, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, first.LoanID)
	assert.Equal(t, 1, second.LoanID)

	_, err = f.loaner.Repay(ctx, "user-1", 0)
	require.NoError(t, err)

	history, err := f.loaner.History(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.LoanStatusCompleted, history[0].Status)
	assert.Equal(t, models.LoanStatusActive, history[1].Status)

	// History entries are copies of the stored loans
	history[1].Status = models.LoanStatusCompleted
	assert.Equal(t, models.LoanStatusActive, f.loans.Get("user-1", 1).Status)
}

func TestLoanService_History_Empty(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	history, err := f.loaner.History(ctx, "user-1")

	require.NoError(t, err)
	assert.Empty(t, history)
}
