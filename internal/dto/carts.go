package dto

import "CARTOPIA_BACK-END/internal/cart"

// CartAddRequest adds one unit of a (product, size) pair to the stored cart
type CartAddRequest struct {
	ItemID string `json:"itemId"`
	Size   string `json:"size"`
}

// CartUpdateRequest sets the quantity of a (product, size) pair
type CartUpdateRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// CartResponse carries the stored cart snapshot
type CartResponse struct {
	Success  bool      `json:"success"`
	CartData cart.Cart `json:"cartData"`
	Message  string    `json:"message,omitempty"`
}
