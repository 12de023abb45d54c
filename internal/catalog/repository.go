package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marketbay/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository is the catalog lookup surface the core needs. The catalog is
// owned elsewhere; this package only reads it.
type Repository interface {
	FindByNaturalKey(ctx context.Context, key string) (*domain.Product, error)
	FindBySurrogateKey(ctx context.Context, key primitive.ObjectID) (*domain.Product, error)
}
