package catalog

import (
	"errors"
	"time"
)

// Variant is a purchasable variation of a product (color, size, pack).
// Prices are in minor currency units.
type Variant struct {
	SKU          string            `json:"sku"`
	Name         string            `json:"name,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	MRP          int64             `json:"mrp"`
	SellingPrice int64             `json:"selling_price"`
}

// Product is a catalog entry. SellingPrice and MRP are in minor currency
// units; MOQ is the smallest quantity that may be ordered.
type Product struct {
	ID              string    `json:"id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CategoryID      string    `json:"category_id"`
	SubcategoryID   string    `json:"subcategory_id"`
	CategoryName    string    `json:"category_name"`
	SubcategoryName string    `json:"subcategory_name"`
	MRP             int64     `json:"mrp"`
	SellingPrice    int64     `json:"selling_price"`
	DiscountPercent float64   `json:"discount_percent"`
	GSTPercent      float64   `json:"gst_percent"`
	MarginPercent   float64   `json:"margin_percent"`
	Currency        string    `json:"currency"`
	MOQ             int       `json:"moq"`
	Variants        []Variant `json:"variants,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Active          bool      `json:"active"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EffectiveMOQ returns the minimum order quantity, treating an unset MOQ as 1.
func (p *Product) EffectiveMOQ() int {
	if p.MOQ < 1 {
		return 1
	}
	return p.MOQ
}

// CreateProductRequest is the input for creating a product.
type CreateProductRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	CategoryID      string    `json:"category_id"`
	SubcategoryID   string    `json:"subcategory_id"`
	MRP             int64     `json:"mrp"`
	SellingPrice    int64     `json:"selling_price"`
	DiscountPercent float64   `json:"discount_percent,omitempty"`
	GSTPercent      float64   `json:"gst_percent,omitempty"`
	MarginPercent   float64   `json:"margin_percent,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	MOQ             int       `json:"moq,omitempty"`
	Variants        []Variant `json:"variants,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Active          *bool     `json:"active,omitempty"`
}

// Validate checks that the CreateProductRequest has all required fields.
func (r *CreateProductRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.CategoryID == "" {
		return errors.New("category_id is required")
	}
	if r.SubcategoryID == "" {
		return errors.New("subcategory_id is required")
	}
	if r.MRP < 0 || r.SellingPrice < 0 {
		return errors.New("prices must be non-negative")
	}
	if r.SellingPrice > r.MRP {
		return errors.New("selling_price must not exceed mrp")
	}
	if r.MOQ < 0 {
		return errors.New("moq must be non-negative")
	}
	return nil
}

// UpdateProductRequest holds the fields that can be updated on a product.
type UpdateProductRequest struct {
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	MRP             *int64   `json:"mrp,omitempty"`
	SellingPrice    *int64   `json:"selling_price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	GSTPercent      *float64 `json:"gst_percent,omitempty"`
	MarginPercent   *float64 `json:"margin_percent,omitempty"`
	MOQ             *int     `json:"moq,omitempty"`
	Images          []string `json:"images,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// SearchRequest filters the public product listing. Only active products
// are ever returned to corporate users.
type SearchRequest struct {
	Query         string `json:"q,omitempty"`
	CategoryID    string `json:"category_id,omitempty"`
	SubcategoryID string `json:"subcategory_id,omitempty"`
	Page          int    `json:"page,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// SearchResult is a page of products with pagination metadata.
type SearchResult struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Total    int       `json:"total"`
	Pages    int       `json:"pages"`
}
