package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/marketbay/storefront/internal/auth"
	"github.com/marketbay/storefront/internal/cart"
	"github.com/marketbay/storefront/internal/checkout"
	"github.com/marketbay/storefront/internal/identity"
	"github.com/marketbay/storefront/internal/orders"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps typed core errors onto HTTP statuses. Ownership
// violations arrive here already folded into not-found.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "cart_item_not_found", err.Error())
	case errors.Is(err, orders.ErrPurchaseNotFound):
		respondError(w, http.StatusNotFound, "purchase_not_found", err.Error())
	case errors.Is(err, orders.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrNoValidItems):
		respondError(w, http.StatusBadRequest, "no_valid_items", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "email_taken", err.Error())
	case errors.Is(err, auth.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, "username_taken", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
