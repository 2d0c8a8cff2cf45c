package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"CARTOPIA_BACK-END/internal/dto"
	"CARTOPIA_BACK-END/internal/models"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/utils"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// Add creates a catalog item
// @Summary Add a product
// @Tags product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductAddRequest true "Product data"
// @Success 200 {object} utils.MessageResponse "Product added"
// @Router /api/product/add [post]
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ProductAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	if req.Name == "" || req.Price <= 0 {
		utils.WriteMessage(w, false, "Product name and a positive price are required")
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Bestseller:  req.Bestseller,
	}

	if err := h.products.Insert(r.Context(), product); err != nil {
		slog.Error("product add: insert failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteMessage(w, true, "Product Added")
}

// Remove deletes a catalog item
// @Summary Remove a product
// @Tags product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductRemoveRequest true "Product id"
// @Success 200 {object} utils.MessageResponse "Product removed"
// @Router /api/product/remove [post]
func (h *ProductHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ProductRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	err := h.products.Delete(r.Context(), req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "Product not found")
		return
	}
	if err != nil {
		slog.Error("product remove: delete failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteMessage(w, true, "Product Removed")
}

// List returns the full catalog
// @Summary List products
// @Tags product
// @Produce json
// @Success 200 {object} dto.ProductListResponse "Catalog"
// @Router /api/product/list [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.products.List(r.Context())
	if err != nil {
		slog.Error("product list failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProductListResponse{
		Success:  true,
		Products: products,
	})
}

// Single returns one catalog item
// @Summary Get a single product
// @Tags product
// @Accept json
// @Produce json
// @Param request body dto.ProductSingleRequest true "Product id"
// @Success 200 {object} dto.ProductSingleResponse "Product"
// @Router /api/product/single [post]
func (h *ProductHandler) Single(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ProductSingleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, false, "Invalid request body")
		return
	}

	product, err := h.products.FindByID(r.Context(), req.ProductID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, false, "Product not found")
		return
	}
	if err != nil {
		slog.Error("product single: lookup failed", slog.String("error", err.Error()))
		utils.WriteMessage(w, false, genericErrorMessage)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProductSingleResponse{
		Success: true,
		Product: *product,
	})
}
