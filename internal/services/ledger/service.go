// Package ledger is the authoritative, append-structured record of all
// withdrawal transactions. Ids increase monotonically ledger-wide and are
// never reused; references are unique for the life of the ledger. Appended
// records are immutable except for the status field.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pawncarry/internal/models"
)

// referenceSeed is where reference numbers start; the first appended
// transaction gets TXN100001.
const referenceSeed = 100000

// Service is the transaction store contract.
type Service interface {
	// Append assigns the next id, a fresh reference and the creation time,
	// stores the transaction, and returns the stored record.
	Append(ctx context.Context, tx models.Transaction) (models.Transaction, error)

	// UpdateStatus moves a transaction to status. changed is false when the
	// transaction already holds status (idempotent retry). Fails with
	// ErrNotFound for unknown ids and ErrInvalidTransition when the
	// transaction is terminal and status differs.
	UpdateStatus(ctx context.Context, id uint, status models.TransactionStatus) (tx models.Transaction, changed bool, err error)

	// Get returns a single transaction by id.
	Get(ctx context.Context, id uint) (models.Transaction, error)

	// ListByUser returns a user's transactions, most recent first.
	ListByUser(ctx context.Context, userID uint) ([]models.Transaction, error)

	// ListAll returns every transaction, most recent first.
	ListAll(ctx context.Context) ([]models.Transaction, error)
}

type memoryLedger struct {
	mu      sync.Mutex
	byID    map[uint]*models.Transaction
	ordered []*models.Transaction // append order
	nextID  uint
	nextRef uint64
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() Service {
	return &memoryLedger{
		byID:    make(map[uint]*models.Transaction),
		nextRef: referenceSeed,
	}
}

func (l *memoryLedger) Append(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.nextRef++
	tx.ID = l.nextID
	tx.Reference = fmt.Sprintf("TXN%d", l.nextRef)
	tx.CreatedAt = time.Now().UTC()

	stored := tx
	l.byID[stored.ID] = &stored
	l.ordered = append(l.ordered, &stored)
	return tx, nil
}

func (l *memoryLedger) UpdateStatus(_ context.Context, id uint, status models.TransactionStatus) (models.Transaction, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.byID[id]
	if !ok {
		return models.Transaction{}, false, ErrNotFound
	}
	if tx.Status == status {
		return *tx, false, nil
	}
	if tx.Status.Terminal() {
		return models.Transaction{}, false, ErrInvalidTransition
	}
	tx.Status = status
	return *tx, true, nil
}

func (l *memoryLedger) Get(_ context.Context, id uint) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.byID[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}
	return *tx, nil
}

func (l *memoryLedger) ListByUser(_ context.Context, userID uint) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Transaction, 0)
	for i := len(l.ordered) - 1; i >= 0; i-- {
		if l.ordered[i].UserID == userID {
			out = append(out, *l.ordered[i])
		}
	}
	return out, nil
}

func (l *memoryLedger) ListAll(_ context.Context) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Transaction, 0, len(l.ordered))
	for i := len(l.ordered) - 1; i >= 0; i-- {
		out = append(out, *l.ordered[i])
	}
	return out, nil
}
