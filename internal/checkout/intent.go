package checkout

import (
	"context"
	"time"
)

type IntentStatus string

const (
	IntentStatusCreated         IntentStatus = "CREATED"
	IntentStatusPurchaseWritten IntentStatus = "PURCHASE_WRITTEN"
	IntentStatusCompleted       IntentStatus = "COMPLETED"
)

// Intent records a checkout in flight. The write-purchase then clear-cart
// sequence spans two collections, so the intent is what makes the second step
// retryable: an intent stuck in PURCHASE_WRITTEN means the order exists but
// the cart may not have been cleared yet.
type Intent struct {
	ID         string       `bson:"_id"`
	UserID     string       `bson:"user_id"`
	PurchaseID string       `bson:"purchase_id,omitempty"`
	Status     IntentStatus `bson:"status"`
	CreatedAt  time.Time    `bson:"created_at"`
	UpdatedAt  time.Time    `bson:"updated_at"`
}

type IntentRepository interface {
	Create(ctx context.Context, intent *Intent) error
	MarkPurchaseWritten(ctx context.Context, intentID, purchaseID string) error
	Complete(ctx context.Context, intentID string) error
	// FindStuck returns intents left in PURCHASE_WRITTEN for longer than
	// staleAfter.
	FindStuck(ctx context.Context, staleAfter time.Duration) ([]*Intent, error)
}
