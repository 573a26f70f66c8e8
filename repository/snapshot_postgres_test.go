package repository

import (
	"context"
	"testing"

	"tokenbank/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSnapshotStore_SaveLoad(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	store := NewPostgresSnapshotStore(testDB.DB)
	ctx := context.Background()

	t.Run("load with no snapshot", func(t *testing.T) {
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, testSnapshot()))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.Len(t, loaded.Accounts, 1)
		assert.Equal(t, "user-1", loaded.Accounts[0].UserKey)
		assert.Equal(t, int64(1000), loaded.Accounts[0].Account.Balance)
	})

	t.Run("save replaces previous snapshot", func(t *testing.T) {
		updated := testSnapshot()
		updated.Accounts[0].Account.Balance = 7777
		require.NoError(t, store.Save(ctx, updated))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7777), loaded.Accounts[0].Account.Balance)

		// Only one row survives the replacement
		var count int
		err = testDB.DB.QueryRow(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
