package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/port/cache"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// Singleflight keys for collapsing concurrent cache-miss loads.
const (
	sfCategories    = "categories"
	sfProductPrefix = "product:"
)

// CatalogService manages categories, subcategories, and products. Public
// reads go through an in-process cache with singleflight collapsing;
// checkout deliberately bypasses this service and reads the live catalog
// inside its transaction.
type CatalogService struct {
	store database.Store
	cache cache.Catalog
	group singleflight.Group
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store database.Store, c cache.Catalog) *CatalogService {
	return &CatalogService{store: store, cache: c}
}

// --- Categories ---

// CreateCategory creates a category with a slug derived from its name.
func (s *CatalogService) CreateCategory(ctx context.Context, createdBy string, req *catalog.CreateCategoryRequest) (*catalog.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	c := &catalog.Category{
		Name:         req.Name,
		Slug:         catalog.Slugify(req.Name),
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		CreatedBy:    createdBy,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	return c, nil
}

// GetCategory returns a category with its subcategories.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// ListCategories returns categories, cached for public (active-only) reads.
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	if !activeOnly {
		return s.store.ListCategories(ctx, false)
	}

	if categories, ok := s.cache.GetCategories(ctx); ok {
		return categories, nil
	}

	v, err, _ := s.group.Do(sfCategories, func() (any, error) {
		categories, err := s.store.ListCategories(ctx, true)
		if err != nil {
			return nil, err
		}
		s.cache.SetCategories(ctx, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Category), nil
}

// UpdateCategory applies a partial update to a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req *catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
		c.Slug = catalog.Slugify(req.Name)
	}
	if req.ImageURL != "" {
		c.ImageURL = req.ImageURL
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	return c, nil
}

// DeleteCategory removes a category. The store refuses while products
// still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

// AddSubcategory adds a subcategory to a category.
func (s *CatalogService) AddSubcategory(ctx context.Context, categoryID string, req *catalog.CreateSubcategoryRequest) (*catalog.Subcategory, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	sc := &catalog.Subcategory{
		Name:         req.Name,
		Slug:         catalog.Slugify(req.Name),
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.store.AddSubcategory(ctx, categoryID, sc); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	return sc, nil
}

// --- Products ---

// CreateProduct creates a product under a category/subcategory pair,
// generating its SKU and per-variant SKUs.
func (s *CatalogService) CreateProduct(ctx context.Context, createdBy string, req *catalog.CreateProductRequest) (*catalog.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	c, err := s.store.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	var sub *catalog.Subcategory
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == req.SubcategoryID {
			sub = &c.Subcategories[i]
			break
		}
	}
	if sub == nil {
		return nil, fmt.Errorf("subcategory %s not in category %s: %w", req.SubcategoryID, req.CategoryID, domain.ErrNotFound)
	}

	sku := catalog.GenerateSKU(c.Slug, sub.Slug)
	variants := make([]catalog.Variant, len(req.Variants))
	for i, v := range req.Variants {
		v.SKU = catalog.VariantSKU(sku, i)
		variants[i] = v
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	moq := req.MOQ
	if moq < 1 {
		moq = 1
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p := &catalog.Product{
		SKU:             sku,
		Name:            req.Name,
		Description:     req.Description,
		CategoryID:      c.ID,
		SubcategoryID:   sub.ID,
		CategoryName:    c.Name,
		SubcategoryName: sub.Name,
		MRP:             req.MRP,
		SellingPrice:    req.SellingPrice,
		DiscountPercent: req.DiscountPercent,
		GSTPercent:      req.GSTPercent,
		MarginPercent:   req.MarginPercent,
		Currency:        currency,
		MOQ:             moq,
		Variants:        variants,
		Images:          req.Images,
		Active:          active,
		CreatedBy:       createdBy,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	slog.Info("product created", "product_id", p.ID, "sku", p.SKU)
	return p, nil
}

// GetProduct returns a product, served from cache when possible.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if p, ok := s.cache.GetProduct(ctx, id); ok {
		return p, nil
	}

	v, err, _ := s.group.Do(sfProductPrefix+id, func() (any, error) {
		p, err := s.store.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.SetProduct(ctx, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Product), nil
}

// UpdateProduct applies a partial update and invalidates the cache entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *catalog.UpdateProductRequest) (*catalog.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.MRP != nil {
		p.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = *req.DiscountPercent
	}
	if req.GSTPercent != nil {
		p.GSTPercent = *req.GSTPercent
	}
	if req.MarginPercent != nil {
		p.MarginPercent = *req.MarginPercent
	}
	if req.MOQ != nil {
		moq := *req.MOQ
		if moq < 1 {
			moq = 1
		}
		p.MOQ = moq
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if p.SellingPrice > p.MRP {
		return nil, fmt.Errorf("selling_price must not exceed mrp: %w", domain.ErrValidation)
	}

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.cache.DropProduct(ctx, id)
	return p, nil
}

// SearchProducts returns a page of active products. Results are not
// cached: filters and pagination make hit rates poor, and the page size
// keeps queries cheap.
func (s *CatalogService) SearchProducts(ctx context.Context, req catalog.SearchRequest) (*catalog.SearchResult, error) {
	return s.store.SearchProducts(ctx, req)
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	s.cache.DropCategories(ctx)
}
