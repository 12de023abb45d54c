package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusConfirmed PurchaseStatus = "confirmed"
	PurchaseStatusShipped   PurchaseStatus = "shipped"
	PurchaseStatusDelivered PurchaseStatus = "delivered"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// IsValid reports whether s is one of the five known statuses.
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusConfirmed, PurchaseStatusShipped,
		PurchaseStatusDelivered, PurchaseStatusCancelled:
		return true
	}
	return false
}

func (s PurchaseStatus) String() string {
	return string(s)
}

type ShippingAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zip_code" json:"zip_code"`
	Country string `bson:"country" json:"country"`
}

// PurchaseItem is a price-at-order-time snapshot. Later catalog price changes
// never alter it.
type PurchaseItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	ProductName string  `bson:"product_name" json:"product_name"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	TotalPrice  float64 `bson:"total_price" json:"total_price"`
}

// Purchase is the immutable order record. Only Status is ever overwritten
// after creation; purchases are never deleted.
type Purchase struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	Items             []PurchaseItem     `bson:"items" json:"items"`
	TotalAmount       float64            `bson:"total_amount" json:"total_amount"`
	ShippingAddress   ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod     string             `bson:"payment_method" json:"payment_method"`
	Status            PurchaseStatus     `bson:"status" json:"status"`
	OrderDate         time.Time          `bson:"order_date" json:"order_date"`
	EstimatedDelivery time.Time          `bson:"estimated_delivery" json:"estimated_delivery"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
