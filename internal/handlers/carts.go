package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"CARTOPIA_BACK-END/internal/cart"
	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// CartHandler handles stored-cart requests for authenticated users
type CartHandler struct {
	users repository.UserRepository
}

// NewCartHandler creates a new CartHandler instance
func NewCartHandler(users repository.UserRepository) *CartHandler {
	return &CartHandler{users: users}
}

// Get returns the stored cart snapshot
// @Summary Get the stored cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse "Stored cart"
// @Router /api/cart/get [post]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "User not found")
		return
	}
	if err != nil {
		slog.Error("cart get: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CartResponse{
		Success:  true,
		CartData: user.CartData,
	})
}

// Add adds one unit of a (product, size) pair to the stored cart
// @Summary Add an item to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CartAddRequest true "Item and size"
// @Success 200 {object} dto.CartResponse "Updated cart"
// @Router /api/cart/add [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}
	if req.ItemID == "" || req.Size == "" {
		utils.WriteMessage(w, false, "Item and size are required")
		return
	}

	h.mutateCart(w, r, "Added To Cart", func(c cart.Cart) {
		if c[req.ItemID] == nil {
			c[req.ItemID] = map[string]int{}
		}
		c[req.ItemID][req.Size]++
	})
}

// Update sets the quantity of a (product, size) pair in the stored cart
// @Summary Update a cart quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CartUpdateRequest true "Item, size and quantity"
// @Success 200 {object} dto.CartResponse "Updated cart"
// @Router /api/cart/update [post]
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.CartUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}
	if req.ItemID == "" || req.Size == "" || req.Quantity < 0 {
		utils.WriteMessage(w, false, "Item, size and a non-negative quantity are required")
		return
	}

	h.mutateCart(w, r, "Cart Updated", func(c cart.Cart) {
		if req.Quantity == 0 {
			delete(c[req.ItemID], req.Size)
			if len(c[req.ItemID]) == 0 {
				delete(c, req.ItemID)
			}
			return
		}
		if c[req.ItemID] == nil {
			c[req.ItemID] = map[string]int{}
		}
		c[req.ItemID][req.Size] = req.Quantity
	})
}

// mutateCart applies fn to the stored cart under the version
// compare-and-swap, retrying against concurrent writers.
func (h *CartHandler) mutateCart(w http.ResponseWriter, r *http.Request, message string, fn func(cart.Cart)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, false, "Not Authorized. Login Again.")
		return
	}

	ctx := r.Context()

	var user *models.User
	for attempt := 0; ; attempt++ {
		var err error
		user, err = h.users.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, false, "User not found")
			return
		}
		if err != nil {
			slog.Error("cart mutate: lookup failed", slog.String("error", err.Error()))
			utils.WriteMessage(w, false, genericErrorMessage)
			return
		}

		if user.CartData == nil {
			user.CartData = cart.Cart{}
		}
		fn(user.CartData)

		err = h.users.Update(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrVersionConflict) && attempt < mergeRetries {
			continue
		}
		slog.Error("cart mutate: persist failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CartResponse{
		Success:  true,
		CartData: user.CartData,
		Message:  message,
	})
}
