// Package catalog defines the product catalog: categories with embedded
// subcategories, and products with price/MOQ attributes.
package catalog

import (
	"errors"
	"time"
)

// Subcategory is an owned child of a Category.
type Subcategory struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ImageURL      string    `json:"image_url,omitempty"`
	DisplayOrder  int       `json:"display_order"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Category groups products for browsing.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	ImageURL      string        `json:"image_url,omitempty"`
	DisplayOrder  int           `json:"display_order"`
	Active        bool          `json:"active"`
	ProductsCount int           `json:"products_count"`
	Subcategories []Subcategory `json:"subcategories"`
	CreatedBy     string        `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateCategoryRequest is the input for creating a category.
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Validate checks that the CreateCategoryRequest has all required fields.
func (r *CreateCategoryRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateCategoryRequest holds the fields that can be updated on a category.
type UpdateCategoryRequest struct {
	Name         string `json:"name,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder *int   `json:"display_order,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// CreateSubcategoryRequest is the input for adding a subcategory.
type CreateSubcategoryRequest struct {
	Name         string `json:"name"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Validate checks that the CreateSubcategoryRequest has all required fields.
func (r *CreateSubcategoryRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
