// Package wallet holds per-user balances and the atomic reserve/credit
// contract the withdrawal engine depends on. Balances are mutated only
// through this store; a durable backend can replace the in-memory
// implementation without changing the Store interface.
package wallet

import (
	"context"
	"sync"

	"pawncarry/internal/money"
)

// Store is the balance-holding contract.
type Store interface {
	// Create registers a wallet for a user with an opening balance.
	Create(ctx context.Context, userID uint, opening money.Amount) error

	// TryReserve atomically checks balance >= total and debits it. It
	// returns the new balance and true on success, or the unchanged
	// balance and false when funds are insufficient.
	TryReserve(ctx context.Context, userID uint, total money.Amount) (money.Amount, bool, error)

	// Credit atomically adds amount to the balance. Used only to reverse
	// a rejected withdrawal's hold.
	Credit(ctx context.Context, userID uint, amount money.Amount) (money.Amount, error)

	// Balance returns a snapshot of the current balance. The value may be
	// stale as soon as it is returned under concurrent mutation.
	Balance(ctx context.Context, userID uint) (money.Amount, error)

	// SetBalance overwrites the balance directly. Administrative override
	// only; no ledger record is produced for it.
	SetBalance(ctx context.Context, userID uint, balance money.Amount) error
}

// memoryStore keeps one independently lockable entry per wallet so that
// unrelated users' operations never contend.
type memoryStore struct {
	mu      sync.RWMutex
	wallets map[uint]*entry
}

type entry struct {
	mu      sync.Mutex
	balance money.Amount
}

// NewMemoryStore creates an empty in-memory wallet store.
func NewMemoryStore() Store {
	return &memoryStore{wallets: make(map[uint]*entry)}
}

func (s *memoryStore) Create(_ context.Context, userID uint, opening money.Amount) error {
	if opening.IsNegative() {
		return ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[userID]; ok {
		return ErrWalletExists
	}
	s.wallets[userID] = &entry{balance: opening}
	return nil
}

func (s *memoryStore) TryReserve(_ context.Context, userID uint, total money.Amount) (money.Amount, bool, error) {
	if !total.IsPositive() {
		return 0, false, ErrNegativeAmount
	}
	e, err := s.get(userID)
	if err != nil {
		return 0, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.balance < total {
		return e.balance, false, nil
	}
	e.balance = e.balance.Sub(total)
	return e.balance, true, nil
}

func (s *memoryStore) Credit(_ context.Context, userID uint, amount money.Amount) (money.Amount, error) {
	if !amount.IsPositive() {
		return 0, ErrNegativeAmount
	}
	e, err := s.get(userID)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.balance = e.balance.Add(amount)
	return e.balance, nil
}

func (s *memoryStore) Balance(_ context.Context, userID uint) (money.Amount, error) {
	e, err := s.get(userID)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance, nil
}

func (s *memoryStore) SetBalance(_ context.Context, userID uint, balance money.Amount) error {
	if balance.IsNegative() {
		return ErrNegativeAmount
	}
	e, err := s.get(userID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.balance = balance
	return nil
}

func (s *memoryStore) get(userID uint) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.wallets[userID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	return e, nil
}
