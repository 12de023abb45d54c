package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketbay/storefront/internal/catalog"
	"github.com/marketbay/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Resolver maps caller-supplied product references onto catalog records. The
// returned product's ID is the identifier the catalog actually stores, which
// is not guaranteed to equal the raw input; callers must use it for all
// subsequent writes.
type Resolver struct {
	catalog catalog.Repository
}

func NewResolver(repo catalog.Repository) *Resolver {
	return &Resolver{catalog: repo}
}

func (r *Resolver) Resolve(ctx context.Context, rawID string) (*domain.Product, error) {
	for _, ref := range ParseRefs(rawID) {
		var (
			product *domain.Product
			err     error
		)

		switch ref.Kind {
		case RefNatural:
			product, err = r.catalog.FindByNaturalKey(ctx, ref.Natural)
		case RefSurrogate:
			product, err = r.catalog.FindBySurrogateKey(ctx, ref.Surrogate)
		}

		if err == nil {
			return product, nil
		}
		if !errors.Is(err, catalog.ErrProductNotFound) {
			return nil, fmt.Errorf("failed to resolve product %q: %w", rawID, err)
		}
	}

	return nil, ErrProductNotFound
}
