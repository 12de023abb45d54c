package checkout

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marketbay/storefront/internal/domain"
)

const deliveryLeadTime = 7 * 24 * time.Hour

// CartStore is the slice of the cart subsystem checkout needs: the current
// view and an idempotent clear.
type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

type ProductResolver interface {
	Resolve(ctx context.Context, rawID string) (*domain.Product, error)
}

// PurchaseWriter appends to the purchase ledger.
type PurchaseWriter interface {
	Insert(ctx context.Context, purchase *domain.Purchase) (primitive.ObjectID, error)
}

type OutboxAppender interface {
	Append(ctx context.Context, eventType string, payload any) error
}

// ItemRequest is one line of an explicit-item order.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderPlacedEvent is the outbox payload emitted for every new purchase.
type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"order_date"`
}

type Service struct {
	cart      CartStore
	resolver  ProductResolver
	purchases PurchaseWriter
	intents   IntentRepository
	outbox    OutboxAppender
}

func NewService(cart CartStore, resolver ProductResolver, purchases PurchaseWriter, intents IntentRepository, outbox OutboxAppender) *Service {
	return &Service{
		cart:      cart,
		resolver:  resolver,
		purchases: purchases,
		intents:   intents,
		outbox:    outbox,
	}
}

// PlaceOrderFromCart converts the live cart into a purchase. Resolution is
// best-effort: entries whose product can't be resolved are skipped and
// excluded from both the item list and the total. Prices are read from the
// catalog at checkout time; nothing is locked at add time.
func (s *Service) PlaceOrderFromCart(ctx context.Context, userID string, address domain.ShippingAddress, paymentMethod string) (*domain.Purchase, error) {
	view, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		items []domain.PurchaseItem
		total float64
	)
	for productID, quantity := range view.Items {
		product, errResolve := s.resolver.Resolve(ctx, productID)
		if errResolve != nil {
			log.Printf("skipping unresolvable cart entry %q: %v", productID, errResolve)
			continue
		}

		lineTotal := product.Price * float64(quantity)
		total += lineTotal
		items = append(items, domain.PurchaseItem{
			ProductID:   productID,
			Quantity:    quantity,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	now := time.Now().UTC()
	purchase := &domain.Purchase{
		UserID:            userID,
		Items:             items,
		TotalAmount:       total,
		ShippingAddress:   address,
		PaymentMethod:     paymentMethod,
		Status:            domain.PurchaseStatusConfirmed,
		OrderDate:         now,
		EstimatedDelivery: now.Add(deliveryLeadTime),
		CreatedAt:         now,
	}

	return s.commit(ctx, userID, purchase)
}

// PlaceOrder places an explicit item list, bypassing the live cart. Unlike
// the cart variant, resolution is strict: the first unresolvable item fails
// the whole order. The user's cart is cleared unconditionally afterwards even
// though the ordered items may differ from its contents.
func (s *Service) PlaceOrder(ctx context.Context, userID string, requests []ItemRequest, address domain.ShippingAddress, paymentMethod string, estimatedDelivery *time.Time) (*domain.Purchase, error) {
	var (
		items []domain.PurchaseItem
		total float64
	)
	for _, req := range requests {
		product, err := s.resolver.Resolve(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		lineTotal := product.Price * float64(req.Quantity)
		total += lineTotal
		items = append(items, domain.PurchaseItem{
			ProductID:   req.ProductID,
			Quantity:    req.Quantity,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
	}

	now := time.Now().UTC()
	delivery := now
	if estimatedDelivery != nil {
		delivery = *estimatedDelivery
	}

	purchase := &domain.Purchase{
		UserID:            userID,
		Items:             items,
		TotalAmount:       total,
		ShippingAddress:   address,
		PaymentMethod:     paymentMethod,
		Status:            domain.PurchaseStatusPending,
		OrderDate:         now,
		EstimatedDelivery: delivery,
		CreatedAt:         now,
	}

	return s.commit(ctx, userID, purchase)
}

// commit runs the write-purchase then clear-cart sequence under a recorded
// intent. The two writes aren't one transaction; the intent makes the clear
// step retryable by the recovery loop if this call dies in between.
func (s *Service) commit(ctx context.Context, userID string, purchase *domain.Purchase) (*domain.Purchase, error) {
	intent := &Intent{ID: uuid.NewString(), UserID: userID}
	if err := s.intents.Create(ctx, intent); err != nil {
		return nil, err
	}

	id, err := s.purchases.Insert(ctx, purchase)
	if err != nil {
		return nil, err
	}
	purchase.ID = id

	if errMark := s.intents.MarkPurchaseWritten(ctx, intent.ID, id.Hex()); errMark != nil {
		log.Printf("failed to mark checkout intent %s: %v", intent.ID, errMark)
	}

	event := OrderPlacedEvent{
		OrderID:     id.Hex(),
		UserID:      userID,
		TotalAmount: purchase.TotalAmount,
		ItemCount:   len(purchase.Items),
		Status:      purchase.Status.String(),
		OrderDate:   purchase.OrderDate,
	}
	if errOutbox := s.outbox.Append(ctx, "order.placed", event); errOutbox != nil {
		log.Printf("failed to append order.placed event for %s: %v", id.Hex(), errOutbox)
	}

	if _, errClear := s.cart.Clear(ctx, userID); errClear != nil {
		// The order stands; the recovery loop will re-clear from the intent.
		log.Printf("failed to clear cart after checkout for user %s: %v", userID, errClear)
		return purchase, nil
	}

	if errComplete := s.intents.Complete(ctx, intent.ID); errComplete != nil {
		log.Printf("failed to complete checkout intent %s: %v", intent.ID, errComplete)
	}

	return purchase, nil
}
