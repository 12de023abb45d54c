package domain

import "time"

// CartEntry is one (user, product) row. At most one entry exists per pair;
// an entry with quantity <= 0 is deleted rather than stored.
type CartEntry struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// CartView is the read shape handed to callers: product id -> quantity.
type CartView struct {
	Items      map[string]int `json:"items"`
	TotalItems int            `json:"total_items"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
