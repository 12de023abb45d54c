package auth

import (
	"context"
	"errors"

	"github.com/marketbay/storefront/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrUsername is the duplicate check used at signup.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
}
