package reorder

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Suggestion is one ranked (product, quantity) pair from the external
// recommendation engine.
type Suggestion struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Recommender produces ranked reorder suggestions for a user. The engine
// itself is an external collaborator.
type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]Suggestion, error)
}

// BreakerRecommender bounds calls to a slow or failing recommender with a
// per-call timeout and a circuit breaker, so checkout-adjacent requests don't
// hang on it.
type BreakerRecommender struct {
	inner   Recommender
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[[]Suggestion]
}

func NewBreakerRecommender(inner Recommender, timeout time.Duration) *BreakerRecommender {
	settings := gobreaker.Settings{
		Name:    "recommender",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerRecommender{
		inner:   inner,
		timeout: timeout,
		cb:      gobreaker.NewCircuitBreaker[[]Suggestion](settings),
	}
}

func (b *BreakerRecommender) Recommend(ctx context.Context, userID string) ([]Suggestion, error) {
	return b.cb.Execute(func() ([]Suggestion, error) {
		callCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		return b.inner.Recommend(callCtx, userID)
	})
}
