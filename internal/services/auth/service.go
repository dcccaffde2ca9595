// Package auth is the credential-issuing collaborator: it verifies passwords
// and mints session tokens. The withdrawal core never sees credentials.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"pawncarry/internal/models"
	"pawncarry/internal/services/user"
	"pawncarry/internal/utils"
)

// Service authenticates users and issues JWTs.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

type service struct {
	users  user.Service
	secret string
}

// NewService creates an auth service signing tokens with secret.
func NewService(users user.Service, secret string) Service {
	if users == nil {
		panic("user service is required")
	}
	return &service{users: users, secret: secret}
}

func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u, s.secret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
