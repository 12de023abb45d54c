package orders

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marketbay/storefront/internal/domain"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrInvalidStatus    = errors.New("invalid purchase status")
)

// Repository is the purchase ledger. Purchases are inserted once, never
// deleted, and only their status is ever rewritten. Every owner-scoped read
// folds the ownership check into the lookup filter so a foreign purchase is
// indistinguishable from a missing one.
type Repository interface {
	Insert(ctx context.Context, purchase *domain.Purchase) (primitive.ObjectID, error)
	GetForUser(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error)
	// ListForUser returns the user's purchases ordered by order_date
	// descending, plus the total count for pagination.
	ListForUser(ctx context.Context, userID string, offset, limit int64) ([]*domain.Purchase, int64, error)
	UpdateStatusForUser(ctx context.Context, userID, purchaseID string, status domain.PurchaseStatus) error
}
