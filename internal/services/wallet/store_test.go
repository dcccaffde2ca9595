package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawncarry/internal/money"
)

func newStoreWith(t *testing.T, userID uint, balance string) Store {
	t.Helper()
	s := NewMemoryStore()
	require.NoError(t, s.Create(context.Background(), userID, money.MustParse(balance)))
	return s
}

func TestMemoryStore_Create(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, 1, money.MustParse("100")))
	assert.ErrorIs(t, s.Create(ctx, 1, money.Zero), ErrWalletExists)
	assert.ErrorIs(t, s.Create(ctx, 2, money.MustParse("-1")), ErrNegativeAmount)

	balance, err := s.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.String())

	_, err = s.Balance(ctx, 99)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestMemoryStore_TryReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("success debits exactly the total", func(t *testing.T) {
		s := newStoreWith(t, 1, "500")
		balance, ok, err := s.TryReserve(ctx, 1, money.MustParse("210"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "290.00", balance.String())
	})

	t.Run("failure leaves balance unchanged", func(t *testing.T) {
		s := newStoreWith(t, 1, "500")
		balance, ok, err := s.TryReserve(ctx, 1, money.MustParse("1050"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "500.00", balance.String())

		balance, err = s.Balance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "500.00", balance.String())
	})

	t.Run("reserving the full balance empties the wallet", func(t *testing.T) {
		s := newStoreWith(t, 1, "100")
		balance, ok, err := s.TryReserve(ctx, 1, money.MustParse("100"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "0.00", balance.String())
	})

	t.Run("unknown wallet", func(t *testing.T) {
		s := NewMemoryStore()
		_, _, err := s.TryReserve(ctx, 7, money.MustParse("10"))
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("non-positive total rejected", func(t *testing.T) {
		s := newStoreWith(t, 1, "100")
		_, _, err := s.TryReserve(ctx, 1, money.Zero)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestMemoryStore_Credit(t *testing.T) {
	ctx := context.Background()
	s := newStoreWith(t, 1, "290")

	balance, err := s.Credit(ctx, 1, money.MustParse("210"))
	require.NoError(t, err)
	assert.Equal(t, "500.00", balance.String())

	_, err = s.Credit(ctx, 1, money.MustParse("-10"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = s.Credit(ctx, 2, money.MustParse("10"))
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestMemoryStore_SetBalance(t *testing.T) {
	ctx := context.Background()
	s := newStoreWith(t, 1, "100")

	require.NoError(t, s.SetBalance(ctx, 1, money.MustParse("42.50")))
	balance, err := s.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "42.50", balance.String())

	assert.ErrorIs(t, s.SetBalance(ctx, 1, money.MustParse("-1")), ErrNegativeAmount)
	assert.ErrorIs(t, s.SetBalance(ctx, 9, money.Zero), ErrWalletNotFound)
}

// Two simultaneous reservations of 60 against a balance of 100: exactly one
// may win and the final balance must be 40.
func TestMemoryStore_ConcurrentReserveNoDoubleSpend(t *testing.T) {
	ctx := context.Background()
	s := newStoreWith(t, 1, "100")

	var wg sync.WaitGroup
	results := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.TryReserve(ctx, 1, money.MustParse("60"))
			require.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	balance, err := s.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "40.00", balance.String())
}

// Many goroutines reserving amounts that all fit must each be applied
// exactly once with no lost updates.
func TestMemoryStore_ConcurrentReserveAllFit(t *testing.T) {
	ctx := context.Background()
	s := newStoreWith(t, 1, "1000")

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.TryReserve(ctx, 1, money.MustParse("10"))
			require.NoError(t, err)
			require.True(t, ok)
		}()
	}
	wg.Wait()

	balance, err := s.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.00", balance.String())
}
