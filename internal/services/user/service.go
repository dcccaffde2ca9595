// Package user is the identity store: account creation and administrative
// updates. A balance written here goes straight to the wallet store as a
// documented override; no ledger transaction is recorded for it.
package user

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"pawncarry/internal/models"
	"pawncarry/internal/money"
	"pawncarry/internal/services/wallet"
)

// CreateInput holds the fields for creating a user.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Balance  money.Amount
}

// UpdateInput holds optional administrative updates; nil fields are left
// unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Role     *string
	Balance  *money.Amount
}

// NotificationSink receives fire-and-forget messages for a user.
type NotificationSink interface {
	Emit(ctx context.Context, userID uint, text string)
}

// Service is the identity store contract.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*models.User, error)
}

type service struct {
	mu      sync.RWMutex
	byID    map[uint]models.User
	nextID  uint
	wallets wallet.Store
	sink    NotificationSink
}

// NewService creates an empty in-memory user store backed by the given
// wallet store.
func NewService(wallets wallet.Store, sink NotificationSink) Service {
	if wallets == nil {
		panic("wallet store is required")
	}
	if sink == nil {
		panic("notification sink is required")
	}
	return &service{
		byID:    make(map[uint]models.User),
		wallets: wallets,
		sink:    sink,
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}
	if input.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: invalid balance", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	for _, existing := range s.byID {
		if existing.Username == username || existing.Email == email {
			s.mu.Unlock()
			return nil, ErrUserExists
		}
	}
	s.nextID++
	u := models.User{
		ID:       s.nextID,
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	s.byID[u.ID] = u
	s.mu.Unlock()

	if err := s.wallets.Create(ctx, u.ID, input.Balance); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}

	s.sink.Emit(ctx, u.ID, "Welcome to PawnCarry!")

	return &u, nil
}

func (s *service) Get(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *service) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *service) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.byID))
	for id := uint(1); id <= s.nextID; id++ {
		if u, ok := s.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*models.User, error) {
	if input.Username != nil && strings.TrimSpace(*input.Username) == "" {
		return nil, fmt.Errorf("%w: invalid username", ErrValidation)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if input.Role != nil && !models.ValidRole(*input.Role) {
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}
	if input.Balance != nil && input.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: invalid balance", ErrValidation)
	}

	s.mu.Lock()
	u, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrUserNotFound
	}
	if input.Username != nil {
		u.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		u.Email = strings.TrimSpace(*input.Email)
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	s.byID[id] = u
	s.mu.Unlock()

	if input.Balance != nil {
		if err := s.wallets.SetBalance(ctx, id, *input.Balance); err != nil {
			return nil, fmt.Errorf("set balance: %w", err)
		}
	}

	return &u, nil
}
