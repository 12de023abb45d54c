package cart

import (
	"context"
	"errors"

	"github.com/marketbay/storefront/internal/domain"
)

var ErrItemNotFound = errors.New("item not found in cart")

// Repository defines the cart storage operations. Consumers define this
// interface, not the MongoDB implementation.
type Repository interface {
	GetEntries(ctx context.Context, userID string) ([]domain.CartEntry, error)
	// AddItem merges quantity into the (user, product) entry with an atomic
	// increment, creating the entry when absent.
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	// SetQuantity replaces the entry's quantity. Returns ErrItemNotFound when
	// no entry matched.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	// RemoveItem deletes the entry. Returns ErrItemNotFound when nothing was
	// deleted.
	RemoveItem(ctx context.Context, userID, productID string) error
	// Clear deletes every entry for the user and reports how many were removed.
	Clear(ctx context.Context, userID string) (int64, error)
	// Count returns the summed quantity across the user's entries, 0 when empty.
	Count(ctx context.Context, userID string) (int, error)
}
