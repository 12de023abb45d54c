package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marketbay/storefront/internal/cache"
	"github.com/marketbay/storefront/internal/domain"
	"github.com/marketbay/storefront/internal/identity"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ProductResolver maps a raw product reference to the catalog record carrying
// its canonical stored id.
type ProductResolver interface {
	Resolve(ctx context.Context, rawID string) (*domain.Product, error)
}

type Service struct {
	repo     Repository
	cache    cache.CartCache
	resolver ProductResolver
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cartCache cache.CartCache, resolver ProductResolver) *Service {
	return &Service{
		repo:     repo,
		cache:    cartCache,
		resolver: resolver,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.CartView, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		view, err := s.cache.Get(ctx, userID)
		if err == nil {
			return view, nil // view is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		entries, errGet := s.repo.GetEntries(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}
		view = buildView(entries)

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, view); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return view, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.CartView), nil
}

// Add merges quantity into an existing entry or creates one. The raw product
// id is resolved first; all writes use the canonical id, never the raw input.
func (s *Service) Add(ctx context.Context, userID, rawProductID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.resolver.Resolve(ctx, rawProductID)
	if err != nil {
		return err
	}

	if errAdd := s.repo.AddItem(ctx, userID, product.ID, quantity); errAdd != nil {
		log.Printf("repo add item error: %v", errAdd)
		return errAdd
	}

	s.invalidateCache(userID)
	return nil
}

// Update replaces the entry's quantity rather than adding to it, a deliberate
// asymmetry with Add. A quantity <= 0 deletes the entry, and deleting an
// absent entry is a no-op. Replacing a quantity on an absent entry fails with
// ErrItemNotFound (strict replace, no upsert).
func (s *Service) Update(ctx context.Context, userID, rawProductID string, quantity int) error {
	product, err := s.resolver.Resolve(ctx, rawProductID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		errRemove := s.repo.RemoveItem(ctx, userID, product.ID)
		if errRemove != nil && !errors.Is(errRemove, ErrItemNotFound) {
			log.Printf("repo remove item error: %v", errRemove)
			return errRemove
		}
		s.invalidateCache(userID)
		return nil
	}

	if errSet := s.repo.SetQuantity(ctx, userID, product.ID, quantity); errSet != nil {
		if !errors.Is(errSet, ErrItemNotFound) {
			log.Printf("repo set quantity error: %v", errSet)
		}
		return errSet
	}

	s.invalidateCache(userID)
	return nil
}

// Remove deletes the resolved entry. When the product no longer exists in the
// catalog the raw id is used verbatim, so stale entries stay removable.
func (s *Service) Remove(ctx context.Context, userID, rawProductID string) error {
	productID := rawProductID
	product, err := s.resolver.Resolve(ctx, rawProductID)
	if err == nil {
		productID = product.ID
	} else if !errors.Is(err, identity.ErrProductNotFound) {
		return err
	}

	if errRemove := s.repo.RemoveItem(ctx, userID, productID); errRemove != nil {
		if !errors.Is(errRemove, ErrItemNotFound) {
			log.Printf("repo remove item error: %v", errRemove)
		}
		return errRemove
	}

	s.invalidateCache(userID)
	return nil
}

// Clear deletes every entry for the user and reports the count removed. An
// already-empty cart clears successfully with count 0.
func (s *Service) Clear(ctx context.Context, userID string) (int64, error) {
	removed, err := s.repo.Clear(ctx, userID)
	if err != nil {
		log.Printf("repo clear cart error: %v", err)
		return 0, err
	}

	s.invalidateCache(userID)
	return removed, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.repo.Count(ctx, userID)
}

func buildView(entries []domain.CartEntry) *domain.CartView {
	view := &domain.CartView{
		Items:     make(map[string]int, len(entries)),
		UpdatedAt: time.Now().UTC(),
	}
	for _, entry := range entries {
		view.Items[entry.ProductID] = entry.Quantity
		view.TotalItems += entry.Quantity
	}
	return view
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
