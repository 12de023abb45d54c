package checkout

import (
	"context"
	"log"
	"time"
)

// CartClearer re-clears a cart. The clear is idempotent, so running it again
// for an already-cleared cart is harmless.
type CartClearer interface {
	Clear(ctx context.Context, userID string) (int64, error)
}

// Recoverer finishes checkouts that died between writing the purchase and
// clearing the cart.
type Recoverer struct {
	tick       time.Duration
	staleAfter time.Duration
	intents    IntentRepository
	cart       CartClearer
}

func NewRecoverer(intents IntentRepository, cart CartClearer) *Recoverer {
	return &Recoverer{
		tick:       5 * time.Second,
		staleAfter: 30 * time.Second,
		intents:    intents,
		cart:       cart,
	}
}

func (r *Recoverer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.recoverStuckIntents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Recoverer) recoverStuckIntents(ctx context.Context) {
	intents, err := r.intents.FindStuck(ctx, r.staleAfter)
	if err != nil {
		log.Printf("failed to get stuck checkout intents: %v", err)
		return
	}

	for _, intent := range intents {
		log.Printf("recovering stuck checkout intent: %v", intent.ID)

		if _, errClear := r.cart.Clear(ctx, intent.UserID); errClear != nil {
			log.Printf("failed to re-clear cart for intent %v: %v", intent.ID, errClear)
			continue
		}

		if errComplete := r.intents.Complete(ctx, intent.ID); errComplete != nil {
			log.Printf("failed to complete recovered intent %v: %v", intent.ID, errComplete)
		}
	}
}
