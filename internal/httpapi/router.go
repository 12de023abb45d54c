package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full API surface. Everything under /cart, /orders
// and /reorder requires a verified identity.
func NewRouter(
	authHandler *AuthHandler,
	cartHandler *CartHandler,
	ordersHandler *OrdersHandler,
	reorderHandler *ReorderHandler,
	verifier AuthVerifier,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(verifier))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Get("/count", cartHandler.GetCount)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Post("/checkout", ordersHandler.PlaceOrderFromCart)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", ordersHandler.PlaceOrder)
				r.Get("/", ordersHandler.ListOrders)
				r.Get("/{order_id}", ordersHandler.GetOrder)
				r.Put("/{order_id}/status", ordersHandler.UpdateStatus)
				r.Post("/{order_id}/reorder", reorderHandler.FromPurchase)
			})

			r.Post("/reorder/recommendations", reorderHandler.FromRecommendations)
		})
	})

	return r
}
