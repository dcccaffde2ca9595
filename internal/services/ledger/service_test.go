package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawncarry/internal/models"
	"pawncarry/internal/money"
)

func withdrawalTx(userID uint, amount string) models.Transaction {
	amt := money.MustParse(amount)
	fee := money.FromDecimal(amt.Decimal().Mul(decimal.RequireFromString("0.05")))
	return models.Transaction{
		UserID: userID,
		Type:   models.TransactionTypeWithdrawal,
		Amount: amt,
		Fee:    fee,
		Total:  amt.Add(fee),
		Status: models.StatusPending,
	}
}

func TestMemoryLedger_Append(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	first, err := l.Append(ctx, withdrawalTx(2, "200"))
	require.NoError(t, err)
	second, err := l.Append(ctx, withdrawalTx(2, "50"))
	require.NoError(t, err)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.Equal(t, "TXN100001", first.Reference)
	assert.Equal(t, "TXN100002", second.Reference)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, models.StatusPending, first.Status)

	got, err := l.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = l.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryLedger_Listings(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	a, _ := l.Append(ctx, withdrawalTx(1, "10"))
	b, _ := l.Append(ctx, withdrawalTx(2, "20"))
	c, _ := l.Append(ctx, withdrawalTx(1, "30"))

	mine, err := l.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, c.ID, mine[0].ID) // most recent first
	assert.Equal(t, a.ID, mine[1].ID)

	all, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	empty, err := l.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryLedger_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to completed", func(t *testing.T) {
		l := NewMemoryLedger()
		tx, _ := l.Append(ctx, withdrawalTx(1, "100"))

		updated, changed, err := l.UpdateStatus(ctx, tx.ID, models.StatusCompleted)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.StatusCompleted, updated.Status)
	})

	t.Run("terminal transitions are rejected", func(t *testing.T) {
		l := NewMemoryLedger()
		tx, _ := l.Append(ctx, withdrawalTx(1, "100"))
		_, _, err := l.UpdateStatus(ctx, tx.ID, models.StatusRejected)
		require.NoError(t, err)

		_, _, err = l.UpdateStatus(ctx, tx.ID, models.StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, _, err = l.UpdateStatus(ctx, tx.ID, models.StatusPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		l := NewMemoryLedger()
		tx, _ := l.Append(ctx, withdrawalTx(1, "100"))
		_, _, err := l.UpdateStatus(ctx, tx.ID, models.StatusCompleted)
		require.NoError(t, err)

		updated, changed, err := l.UpdateStatus(ctx, tx.ID, models.StatusCompleted)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, models.StatusCompleted, updated.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		l := NewMemoryLedger()
		_, _, err := l.UpdateStatus(ctx, 12345, models.StatusCompleted)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent finalization settles exactly once", func(t *testing.T) {
		l := NewMemoryLedger()
		tx, _ := l.Append(ctx, withdrawalTx(1, "100"))

		const callers = 20
		var wg sync.WaitGroup
		changes := make(chan bool, callers)
		for i := 0; i < callers; i++ {
			status := models.StatusCompleted
			if i%2 == 1 {
				status = models.StatusRejected
			}
			wg.Add(1)
			go func(s models.TransactionStatus) {
				defer wg.Done()
				_, changed, err := l.UpdateStatus(ctx, tx.ID, s)
				if err == nil && changed {
					changes <- true
				}
			}(status)
		}
		wg.Wait()
		close(changes)

		assert.Len(t, changes, 1)
	})
}

// References from concurrent appends must be pairwise distinct.
func TestMemoryLedger_ConcurrentAppendUniqueReferences(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	const appends = 10000
	var wg sync.WaitGroup
	refs := make(chan string, appends)
	ids := make(chan uint, appends)
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := l.Append(ctx, withdrawalTx(1, "1"))
			require.NoError(t, err)
			refs <- tx.Reference
			ids <- tx.ID
		}()
	}
	wg.Wait()
	close(refs)
	close(ids)

	seenRefs := make(map[string]bool, appends)
	for ref := range refs {
		assert.False(t, seenRefs[ref], "duplicate reference %s", ref)
		seenRefs[ref] = true
	}
	seenIDs := make(map[uint]bool, appends)
	for id := range ids {
		assert.False(t, seenIDs[id], "duplicate id %d", id)
		seenIDs[id] = true
	}
	assert.Len(t, seenRefs, appends)
	assert.Len(t, seenIDs, appends)
}
