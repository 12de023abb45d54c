package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marketbay/storefront/internal/checkout"
	"github.com/marketbay/storefront/internal/domain"
)

type CheckoutService interface {
	PlaceOrderFromCart(ctx context.Context, userID string, address domain.ShippingAddress, paymentMethod string) (*domain.Purchase, error)
	PlaceOrder(ctx context.Context, userID string, items []checkout.ItemRequest, address domain.ShippingAddress, paymentMethod string, estimatedDelivery *time.Time) (*domain.Purchase, error)
}

type OrdersService interface {
	List(ctx context.Context, userID string, offset, limit int64) ([]*domain.Purchase, int64, error)
	Get(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error)
	UpdateStatus(ctx context.Context, userID, purchaseID string, status domain.PurchaseStatus) error
}

type OrdersHandler struct {
	checkout CheckoutService
	orders   OrdersService
	timeout  time.Duration
}

func NewOrdersHandler(checkoutService CheckoutService, ordersService OrdersService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		checkout: checkoutService,
		orders:   ordersService,
		timeout:  timeout,
	}
}

type OrderRequestDTO struct {
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

type PlaceOrderRequestDTO struct {
	Items             []checkout.ItemRequest `json:"items"`
	ShippingAddress   domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod     string                 `json:"payment_method"`
	EstimatedDelivery *time.Time             `json:"estimated_delivery,omitempty"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type OrderListResponseDTO struct {
	Orders      []*domain.Purchase `json:"orders"`
	TotalOrders int64              `json:"total_orders"`
	Page        int64              `json:"page"`
	Limit       int64              `json:"limit"`
}

func (h *OrdersHandler) PlaceOrderFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req OrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	purchase, err := h.checkout.PlaceOrderFromCart(ctx, userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id":     purchase.ID.Hex(),
		"total_amount": purchase.TotalAmount,
		"items_count":  len(purchase.Items),
		"status":       purchase.Status,
	})
}

func (h *OrdersHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_items", "items must not be empty")
		return
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_items", "every item needs a product_id and a positive quantity")
			return
		}
	}

	purchase, err := h.checkout.PlaceOrder(ctx, userID, req.Items, req.ShippingAddress, req.PaymentMethod, req.EstimatedDelivery)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, purchase)
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	limit := parseQueryInt(r, "limit", 10)
	page := parseQueryInt(r, "page", 1)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	purchases, total, err := h.orders.List(ctx, userID, offset, limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderListResponseDTO{
		Orders:      purchases,
		TotalOrders: total,
		Page:        page,
		Limit:       limit,
	})
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	purchase, err := h.orders.Get(ctx, userID, chi.URLParam(r, "order_id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, purchase)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.orders.UpdateStatus(ctx, userID, chi.URLParam(r, "order_id"), domain.PurchaseStatus(req.Status))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "purchase status updated successfully"})
}

func parseQueryInt(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
