package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product represents a catalog item
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
	// Image URLs are opaque strings; hosting is handled elsewhere.
	Images      []string  `bson:"images" json:"images"`
	Category    string    `bson:"category" json:"category"`
	SubCategory string    `bson:"sub_category" json:"sub_category"`
	Sizes       []string  `bson:"sizes" json:"sizes"`
	Bestseller  bool      `bson:"bestseller" json:"bestseller"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
