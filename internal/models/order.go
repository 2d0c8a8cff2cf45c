package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order statuses. Orders move forward through the fulfilment statuses via
// the admin console; a user may move a not-yet-shipped order to cancelled.
const (
	OrderStatusPlaced         = "Order Placed"
	OrderStatusPacking        = "Packing"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

// OrderItem is a product snapshot captured at order time.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order represents a placed order
type Order struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        bson.ObjectID  `bson:"user_id" json:"user_id"`
	Items         []OrderItem    `bson:"items" json:"items"`
	Amount        float64        `bson:"amount" json:"amount"`
	Address       map[string]any `bson:"address" json:"address"`
	Status        string         `bson:"status" json:"status"`
	PaymentMethod string         `bson:"payment_method" json:"payment_method"`
	Payment       bool           `bson:"payment" json:"payment"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// Cancellable reports whether the order may still be cancelled by its owner.
func (o *Order) Cancellable() bool {
	switch o.Status {
	case OrderStatusPlaced, OrderStatusPacking:
		return true
	}
	return false
}
