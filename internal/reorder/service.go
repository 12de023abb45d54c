package reorder

import (
	"context"
	"log"

	"github.com/marketbay/storefront/internal/domain"
)

// PurchaseReader loads a past purchase, ownership-checked.
type PurchaseReader interface {
	Get(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error)
}

// CartMerger is the cart surface reorder needs. Add carries the same
// increment-merge semantics as a regular add-to-cart.
type CartMerger interface {
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	Add(ctx context.Context, userID, rawProductID string, quantity int) error
}

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
)

// CartUpdate is the per-item outcome of a recommendation merge.
type CartUpdate struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
	Quantity  int    `json:"quantity"`
}

// Result aggregates a recommendation merge. Per-item failures never fail the
// operation as a whole.
type Result struct {
	ItemsAdded int          `json:"items_added"`
	Updates    []CartUpdate `json:"cart_updates"`
}

type Service struct {
	purchases   PurchaseReader
	cart        CartMerger
	recommender Recommender
}

func NewService(purchases PurchaseReader, cart CartMerger, recommender Recommender) *Service {
	return &Service{
		purchases:   purchases,
		cart:        cart,
		recommender: recommender,
	}
}

// FromPurchase merges the items of a past purchase back into the live cart.
// Items whose product no longer exists are skipped, consistent with the
// best-effort cart checkout policy. Returns the number of items merged.
func (s *Service) FromPurchase(ctx context.Context, userID, purchaseID string) (int, error) {
	purchase, err := s.purchases.Get(ctx, userID, purchaseID)
	if err != nil {
		return 0, err
	}

	merged := 0
	for _, item := range purchase.Items {
		if errAdd := s.cart.Add(ctx, userID, item.ProductID, item.Quantity); errAdd != nil {
			log.Printf("skipping reorder item %q: %v", item.ProductID, errAdd)
			continue
		}
		merged++
	}

	return merged, nil
}

// FromRecommendations pulls ranked suggestions from the recommender and
// merges each into the cart, continuing past individual failures. An empty
// suggestion list is a zero-added success, not an error.
func (s *Service) FromRecommendations(ctx context.Context, userID string) (*Result, error) {
	suggestions, err := s.recommender.Recommend(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if len(suggestions) == 0 {
		return result, nil
	}

	view, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	inCart := make(map[string]int, len(view.Items))
	for pid, qty := range view.Items {
		inCart[pid] = qty
	}

	for _, suggestion := range suggestions {
		if errAdd := s.cart.Add(ctx, userID, suggestion.ProductID, suggestion.Quantity); errAdd != nil {
			log.Printf("skipping recommended product %q: %v", suggestion.ProductID, errAdd)
			continue
		}

		action := ActionAdded
		newQuantity := suggestion.Quantity
		if existing, ok := inCart[suggestion.ProductID]; ok {
			action = ActionUpdated
			newQuantity = existing + suggestion.Quantity
		}
		inCart[suggestion.ProductID] = newQuantity

		result.Updates = append(result.Updates, CartUpdate{
			ProductID: suggestion.ProductID,
			Action:    action,
			Quantity:  newQuantity,
		})
		result.ItemsAdded++
	}

	return result, nil
}
