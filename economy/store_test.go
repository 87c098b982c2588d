// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "economy.sqlite"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAccounts(t *testing.T) {
	store := openTestStore(t)

	balance, err := store.Balance("Alice")
	require.NoError(t, err)
	assert.Zero(t, balance)

	ok, err := store.HasAccount("Alice")
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := store.CreateAccount("Alice", 10)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateAccount("alice", 99)
	require.NoError(t, err)
	assert.False(t, created)

	balance, err = store.Balance("ALICE")
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)

	ok, err = store.HasAccount("alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStoreDepositWithdraw(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Deposit("Bob", 3))
	require.NoError(t, store.Deposit("Bob", 4.5))

	balance, err := store.Balance("Bob")
	require.NoError(t, err)
	assert.Equal(t, 7.5, balance)

	require.NoError(t, store.Withdraw("Bob", 5))
	balance, err = store.Balance("Bob")
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)

	assert.ErrorIs(t, store.Withdraw("Bob", 5), ErrInsufficientFunds)
	balance, err = store.Balance("Bob")
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)

	assert.ErrorIs(t, store.Withdraw("Nobody", 1), ErrInsufficientFunds)
	assert.NoError(t, store.Withdraw("Nobody", 0))
}

func TestStoreInvalidAmounts(t *testing.T) {
	store := openTestStore(t)

	for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, store.Deposit("Bob", amount), ErrInvalidAmount)
		assert.ErrorIs(t, store.Withdraw("Bob", amount), ErrInvalidAmount)
		assert.ErrorIs(t, store.SetBalance("Bob", amount), ErrInvalidAmount)

		_, err := store.CreateAccount("Bob", amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestStoreTop(t *testing.T) {
	store := openTestStore(t)

	accounts, err := store.Top(5)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, store.SetBalance("Alice", 7))
	require.NoError(t, store.SetBalance("Bob", 3))
	require.NoError(t, store.SetBalance("Carol", 12))
	require.NoError(t, store.SetBalance("Bob", 30))

	accounts, err = store.Top(2)
	require.NoError(t, err)
	assert.Equal(t, []Account{{"Bob", 30}, {"Carol", 12}}, accounts)
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.sqlite")

	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetBalance("Alice", 42))
	require.NoError(t, store.Close())

	store, err = Open(path, nil)
	require.NoError(t, err)
	defer store.Close()

	balance, err := store.Balance("Alice")
	require.NoError(t, err)
	assert.Equal(t, 42.0, balance)
	assert.Equal(t, "42.00 coins", store.Format(balance))
}
