package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marketbay/storefront/internal/cart"
	"github.com/marketbay/storefront/internal/domain"
	"github.com/marketbay/storefront/internal/identity"
)

type stubCartService struct {
	view      *domain.CartView
	addErr    error
	updateErr error
	removeErr error
	cleared   int64
	total     int
}

func (s *stubCartService) Get(context.Context, string) (*domain.CartView, error) {
	if s.view == nil {
		return &domain.CartView{Items: map[string]int{}}, nil
	}
	return s.view, nil
}

func (s *stubCartService) Add(context.Context, string, string, int) error { return s.addErr }

func (s *stubCartService) Update(context.Context, string, string, int) error { return s.updateErr }

func (s *stubCartService) Remove(context.Context, string, string) error { return s.removeErr }

func (s *stubCartService) Clear(context.Context, string) (int64, error) { return s.cleared, nil }

func (s *stubCartService) Count(context.Context, string) (int, error) { return s.total, nil }

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	user := &domain.User{ID: primitive.NewObjectID(), Email: "jane@example.com"}
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newCartHandler(svc CartService) *CartHandler {
	return NewCartHandler(svc, 5*time.Second)
}

func TestGetCart_RequiresAuthentication(t *testing.T) {
	sut := newCartHandler(&stubCartService{})
	rec := httptest.NewRecorder()

	sut.GetCart(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItem_Created(t *testing.T) {
	svc := &stubCartService{view: &domain.CartView{Items: map[string]int{"p1": 2}, TotalItems: 2}}
	sut := newCartHandler(svc)
	rec := httptest.NewRecorder()

	sut.AddItem(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":"p1","quantity":2}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var view domain.CartView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, 2, view.TotalItems)
}

func TestAddItem_RejectsBadQuantity(t *testing.T) {
	sut := newCartHandler(&stubCartService{})

	for _, body := range []string{
		`{"product_id":"p1","quantity":0}`,
		`{"product_id":"p1","quantity":-1}`,
		`{"product_id":"p1","quantity":100}`,
	} {
		rec := httptest.NewRecorder()
		sut.AddItem(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestAddItem_RejectsEmptyProductID(t *testing.T) {
	sut := newCartHandler(&stubCartService{})
	rec := httptest.NewRecorder()

	sut.AddItem(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", `{"quantity":2}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_UnknownProductIs404(t *testing.T) {
	sut := newCartHandler(&stubCartService{addErr: identity.ErrProductNotFound})
	rec := httptest.NewRecorder()

	sut.AddItem(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":"ghost","quantity":1}`))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "product_not_found", resp.Code)
}

func TestUpdateQuantity_ZeroIsAccepted(t *testing.T) {
	// zero quantity means delete, so it must pass request validation
	sut := newCartHandler(&stubCartService{})
	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(http.MethodPut, "/api/v1/cart/items/p1", `{"quantity":0}`), "product_id", "p1")

	sut.UpdateQuantity(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateQuantity_RejectsOversized(t *testing.T) {
	sut := newCartHandler(&stubCartService{})
	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(http.MethodPut, "/api/v1/cart/items/p1", `{"quantity":100}`), "product_id", "p1")

	sut.UpdateQuantity(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_AbsentItemIs404(t *testing.T) {
	sut := newCartHandler(&stubCartService{updateErr: cart.ErrItemNotFound})
	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(http.MethodPut, "/api/v1/cart/items/p1", `{"quantity":5}`), "product_id", "p1")

	sut.UpdateQuantity(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "cart_item_not_found", resp.Code)
}

func TestRemoveItem_OK(t *testing.T) {
	sut := newCartHandler(&stubCartService{})
	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(http.MethodDelete, "/api/v1/cart/items/p1", ""), "product_id", "p1")

	sut.RemoveItem(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClearCart_ReportsRemovedCount(t *testing.T) {
	sut := newCartHandler(&stubCartService{cleared: 3})
	rec := httptest.NewRecorder()

	sut.ClearCart(rec, authedRequest(http.MethodDelete, "/api/v1/cart", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(3), resp["items_removed"])
}

func TestGetCount_ReturnsTotal(t *testing.T) {
	sut := newCartHandler(&stubCartService{total: 7})
	rec := httptest.NewRecorder()

	sut.GetCount(rec, authedRequest(http.MethodGet, "/api/v1/cart/count", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 7, resp["total_items"])
}
