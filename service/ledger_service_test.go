package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_GetBalance_NewAccount(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	balance, err := f.ledger.GetBalance(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, 1, f.accounts.Count())
}

func TestLedgerService_GetOrCreate_EmptyUserKey(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.GetOrCreate(ctx, "")

	assert.EqualError(t, err, "user key must not be empty")
}

func TestLedgerService_Deposit(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	balance, err := f.ledger.Deposit(ctx, "user-1", 1000)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	history := f.txlog.History("user-1")
	require.Len(t, history, 1)
	assert.Equal(t, int64(1), history[0].ID)
	assert.Equal(t, int64(1000), history[0].Amount)
}

func TestLedgerService_Deposit_NonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 0)
	assert.EqualError(t, err, "deposit amount must be positive")

	_, err = f.ledger.Deposit(ctx, "user-1", -50)
	assert.EqualError(t, err, "deposit amount must be positive")
}

func TestLedgerService_Withdraw(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	balance, err := f.ledger.Withdraw(ctx, "user-1", 400)

	require.NoError(t, err)
	assert.Equal(t, int64(600), balance)
}

func TestLedgerService_Withdraw_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Withdraw(ctx, "user-1", 100)

	assert.EqualError(t, err, "insufficient funds: have 0, need 100")

	// Failed withdrawal leaves no transaction record
	assert.Empty(t, f.txlog.History("user-1"))
}

func TestLedgerService_Interest_WholeDays(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	balance, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1050), balance)

	// 1050 * 1.05 = 1102.5, floored
	f.clock.Advance(24 * time.Hour)
	balance, err = f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1102), balance)
}

func TestLedgerService_Interest_FractionalDay(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	// 1000 * 1.05^0.5 = 1024.69..., floored
	f.clock.Advance(12 * time.Hour)
	balance, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), balance)
}

func TestLedgerService_Interest_ZeroElapsed(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	// Repeated reads without time passing must not change the balance
	for i := 0; i < 3; i++ {
		balance, err := f.ledger.GetBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)
	}
}

func TestLedgerService_Interest_PersistedOnRead(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)

	// First read applies and persists; a second read at the same instant
	// sees the same value instead of compounding again
	first, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	second, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLedgerService_Interest_ZeroBalanceKeepsMark(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	// Account created at t0 with zero balance; the interest mark does not
	// advance while the balance is zero
	_, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)

	f.clock.Advance(48 * time.Hour)
	_, err = f.ledger.Deposit(ctx, "user-1", 500)
	require.NoError(t, err)

	// The next read measures elapsed time from t0, so the deposit earns
	// three days of interest after one more day: floor(500 * 1.05^3) = 578
	f.clock.Advance(24 * time.Hour)
	balance, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(578), balance)
}

func TestLedgerService_Interest_LongIdleSaturates(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	// 1000 * 1.05^1200 is far past the int64 range; the balance caps at
	// MaxInt64 instead of wrapping negative
	f.clock.Advance(1200 * 24 * time.Hour)
	balance, err := f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, balance, int64(0))
	assert.Equal(t, int64(math.MaxInt64), balance)

	// A saturated balance stays saturated on later reads
	f.clock.Advance(24 * time.Hour)
	balance, err = f.ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), balance)
}

func TestLedgerService_Deposit_SaturatesAtMaxInt64(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", math.MaxInt64)
	require.NoError(t, err)

	balance, err := f.ledger.Deposit(ctx, "user-1", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), balance)
}

func TestLedgerService_Withdraw_AgainstAccruedInterest(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)

	// 1050 after one day; a withdrawal above the original principal
	// succeeds because interest is applied before the check
	f.clock.Advance(24 * time.Hour)
	balance, err := f.ledger.Withdraw(ctx, "user-1", 1040)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestLedgerService_GetAccountInfo(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()

	_, err := f.ledger.Deposit(ctx, "user-1", 1000)
	require.NoError(t, err)
	_, err = f.ledger.Withdraw(ctx, "user-1", 200)
	require.NoError(t, err)

	account, err := f.ledger.GetAccountInfo(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", account.UserKey)
	assert.Equal(t, int64(800), account.Balance)
	assert.Equal(t, 2, account.TransactionCount)
	assert.True(t, account.IsActive)
}
