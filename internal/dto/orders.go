package dto

import "CARTOPIA_BACK-END/internal/models"

// OrderPlaceRequest represents a cash-on-delivery order placement
type OrderPlaceRequest struct {
	Items   []models.OrderItem `json:"items"`
	Amount  float64            `json:"amount"`
	Address map[string]any     `json:"address"`
}

// OrderStatusRequest is the admin payload for a fulfilment status change
type OrderStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderCancelRequest identifies the order the user wants to cancel
type OrderCancelRequest struct {
	OrderID string `json:"orderId"`
}

// OrdersResponse carries a list of orders
type OrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []models.Order `json:"orders"`
}
