package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// OrderHandler handles order placement, tracking and cancellation
type OrderHandler struct {
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewOrderHandler creates a new OrderHandler instance
func NewOrderHandler(orders repository.OrderRepository, users repository.UserRepository) *OrderHandler {
	return &OrderHandler{orders: orders, users: users}
}

// Place creates a cash-on-delivery order and clears the stored cart
// @Summary Place an order
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrderPlaceRequest true "Order data"
// @Success 200 {object} utils.MessageResponse "Order placed"
// @Router /api/order/place [post]
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	var req dto.OrderPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		utils.WriteMessage(w, false, "Order must contain at least one item")
		return
	}

	userOID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		utils.WriteMessage(w, false, "User not found")
		return
	}

	ctx := r.Context()

	order := &models.Order{
		UserID:        userOID,
		Items:         req.Items,
		Amount:        req.Amount,
		Address:       req.Address,
		Status:        models.OrderStatusPlaced,
		PaymentMethod: "COD",
		Payment:       false,
	}

	if err := h.orders.Insert(ctx, order); err != nil {
		slog.Error("order place: insert failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	// Ordered items leave the stored cart. A lost race here only leaves a
	// stale cart behind, never a lost order.
	if user, err := h.users.FindByID(ctx, userID); err == nil {
		user.CartData = cart.Cart{}
		if err := h.users.Update(ctx, user); err != nil {
			slog.Warn("order place: cart clear failed", slog.String("error", err.Error()))
		}
	}

	utils.WriteMessage(w, true, "Order Placed")
}

// UserOrders lists the authenticated user's orders, newest first
// @Summary List own orders
// @Tags order
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrdersResponse "Orders"
// @Router /api/order/userorders [post]
func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	orders, err := h.orders.FindByUser(r.Context(), userID)
	if err != nil {
		slog.Error("user orders: list failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.OrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

// Cancel moves one of the user's not-yet-shipped orders to cancelled
// @Summary Cancel an order
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrderCancelRequest true "Order id"
// @Success 200 {object} utils.MessageResponse "Order cancelled"
// @Router /api/order/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	var req dto.OrderCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	ctx := r.Context()

	order, err := h.orders.FindByID(ctx, req.OrderID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && order.UserID.Hex() != userID) {
		// A foreign order looks identical to a missing one.
		utils.WriteMessage(w, false, "Order not found")
		return
	}
	if err != nil {
		slog.Error("order cancel: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	if !order.Cancellable() {
		utils.WriteMessage(w, false, "Order can no longer be cancelled")
		return
	}

	order.Status = models.OrderStatusCancelled
	if err := h.orders.Update(ctx, order); err != nil {
		slog.Error("order cancel: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteMessage(w, true, "Order Cancelled")
}

// List returns all orders for the admin console
// @Summary List all orders
// @Tags order
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrdersResponse "All orders"
// @Router /api/order/list [post]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orders, err := h.orders.List(r.Context())
	if err != nil {
		slog.Error("order list failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.OrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

// Status updates an order's fulfilment status from the admin console
// @Summary Update order status
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrderStatusRequest true "Order id and status"
// @Success 200 {object} utils.MessageResponse "Status updated"
// @Router /api/order/status [post]
func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}
	if !validStatus(req.Status) {
		utils.WriteMessage(w, false, "Invalid order status")
		return
	}

	ctx := r.Context()

	order, err := h.orders.FindByID(ctx, req.OrderID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "Order not found")
		return
	}
	if err != nil {
		slog.Error("order status: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	order.Status = req.Status
	if err := h.orders.Update(ctx, order); err != nil {
		slog.Error("order status: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteMessage(w, true, "Status Updated")
}

func validStatus(status string) bool {
	switch status {
	case models.OrderStatusPlaced,
		models.OrderStatusPacking,
		models.OrderStatusShipped,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return true
	}
	return false
}
