package repository

import (
	"fmt"
	"testing"
	"time"

	"tokenbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionStore_GlobalMonotonicIDs(t *testing.T) {
	store := NewTransactionStore()
	now := time.Now()

	// Ids increase across users, not per user
	tx1 := store.Append("user-1", models.TransactionTypeDeposit, 100, "deposit", now)
	tx2 := store.Append("user-2", models.TransactionTypeDeposit, 200, "deposit", now)
	tx3 := store.Append("user-1", models.TransactionTypeWithdrawal, 50, "withdrawal", now)

	assert.Equal(t, int64(1), tx1.ID)
	assert.Equal(t, int64(2), tx2.ID)
	assert.Equal(t, int64(3), tx3.ID)
}

func TestTransactionStore_History_InsertionOrder(t *testing.T) {
	store := NewTransactionStore()
	now := time.Now()

	for i := 0; i < 5; i++ {
		store.Append("user-1", models.TransactionTypeDeposit, int64(i+1), fmt.Sprintf("deposit %d", i+1), now)
	}

	history := store.History("user-1")
	require.Len(t, history, 5)
	for i, tx := range history {
		assert.Equal(t, int64(i+1), tx.ID)
		assert.Equal(t, int64(i+1), tx.Amount)
	}
}

func TestTransactionStore_History_ReturnsCopy(t *testing.T) {
	store := NewTransactionStore()
	store.Append("user-1", models.TransactionTypeDeposit, 100, "deposit", time.Now())

	history := store.History("user-1")
	history[0].Amount = 999

	assert.Equal(t, int64(100), store.History("user-1")[0].Amount)
}

func TestTransactionStore_History_UnknownUser(t *testing.T) {
	store := NewTransactionStore()

	assert.Empty(t, store.History("nobody"))
}

func TestTransactionStore_ReplaceAll_ResumesCounter(t *testing.T) {
	source := NewTransactionStore()
	now := time.Now()
	source.Append("user-1", models.TransactionTypeDeposit, 100, "deposit", now)
	source.Append("user-2", models.TransactionTypeDeposit, 200, "deposit", now)
	source.Append("user-1", models.TransactionTypeStake, 100, "stake", now)

	target := NewTransactionStore()
	target.Append("other", models.TransactionTypeDeposit, 1, "pre-restore", now)
	target.ReplaceAll(source.Entries())

	// Pre-restore contents are gone and the counter resumes after the
	// highest restored id
	assert.Empty(t, target.History("other"))
	tx := target.Append("user-3", models.TransactionTypeDeposit, 300, "deposit", now)
	assert.Equal(t, int64(4), tx.ID)
}

func TestTransactionStore_ReplaceAll_Empty(t *testing.T) {
	store := NewTransactionStore()
	store.Append("user-1", models.TransactionTypeDeposit, 100, "deposit", time.Now())

	store.ReplaceAll(nil)

	assert.Empty(t, store.History("user-1"))
	tx := store.Append("user-1", models.TransactionTypeDeposit, 100, "deposit", time.Now())
	assert.Equal(t, int64(1), tx.ID)
}
