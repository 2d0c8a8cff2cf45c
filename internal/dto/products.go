package dto

import "CARTOPIA_BACK-END/internal/models"

// ProductAddRequest represents the admin payload for adding a product
type ProductAddRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Sizes       []string `json:"sizes"`
	Bestseller  bool     `json:"bestseller"`
}

// ProductRemoveRequest identifies the product to remove
type ProductRemoveRequest struct {
	ID string `json:"id"`
}

// ProductSingleRequest identifies the product to fetch
type ProductSingleRequest struct {
	ProductID string `json:"productId"`
}

// ProductListResponse carries the full catalog
type ProductListResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
}

// ProductSingleResponse carries one catalog item
type ProductSingleResponse struct {
	Success bool           `json:"success"`
	Product models.Product `json:"product"`
}
