package domain

import "time"

// Product is a read-only view of a catalog record. ID always carries the
// identifier the catalog actually stores, regardless of which key form the
// caller used to look it up.
type Product struct {
	ID            string    `bson:"-" json:"product_id"`
	Name          string    `bson:"name" json:"name"`
	Brand         string    `bson:"brand,omitempty" json:"brand,omitempty"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64   `bson:"price" json:"price"`
	Currency      string    `bson:"currency,omitempty" json:"currency,omitempty"`
	Category      string    `bson:"category,omitempty" json:"category,omitempty"`
	Rating        float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	InStock       bool      `bson:"in_stock" json:"in_stock"`
	StockQuantity int       `bson:"stock_quantity,omitempty" json:"stock_quantity,omitempty"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
