package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marketbay/storefront/internal/reorder"
)

type ReorderService interface {
	FromPurchase(ctx context.Context, userID, purchaseID string) (int, error)
	FromRecommendations(ctx context.Context, userID string) (*reorder.Result, error)
}

type ReorderHandler struct {
	service ReorderService
	timeout time.Duration
}

func NewReorderHandler(service ReorderService, timeout time.Duration) *ReorderHandler {
	return &ReorderHandler{
		service: service,
		timeout: timeout,
	}
}

func (h *ReorderHandler) FromPurchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	merged, err := h.service.FromPurchase(ctx, userID, chi.URLParam(r, "order_id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "items added to cart successfully",
		"items_added": merged,
	})
}

func (h *ReorderHandler) FromRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := getUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	result, err := h.service.FromRecommendations(ctx, userID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      fmt.Sprintf("successfully added %d recommended products to cart", result.ItemsAdded),
		"items_added":  result.ItemsAdded,
		"cart_updates": result.Updates,
	})
}
