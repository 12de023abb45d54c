package cache

import (
	"context"
	"errors"

	"github.com/marketbay/storefront/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	Set(ctx context.Context, userID string, view *domain.CartView) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
