package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
)

func newCatalogService(store *mockStore) (*CatalogService, *mockCache) {
	c := newMockCache()
	return NewCatalogService(store, c), c
}

func TestCatalogCreateCategorySlugs(t *testing.T) {
	svc, _ := newCatalogService(newMockStore())

	c, err := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Office Supplies"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Slug != "office-supplies" {
		t.Fatalf("expected slug office-supplies, got %q", c.Slug)
	}
}

func TestCatalogListCategoriesCached(t *testing.T) {
	store := newMockStore()
	svc, cache := newCatalogService(store)

	if _, err := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Pantry"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First active-only read populates the cache.
	got, err := svc.ListCategories(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 category, got %d", len(got))
	}
	if !cache.hasCategories {
		t.Fatal("expected categories cached after read")
	}

	// A write invalidates.
	if _, err := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Hardware"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hasCategories {
		t.Fatal("expected cache invalidated after write")
	}
}

func TestCatalogDeleteCategoryWithProducts(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalogService(store)

	c, err := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Pantry"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.mu.Lock()
	store.products["p1"] = &catalog.Product{ID: "p1", CategoryID: c.ID, Active: true}
	store.mu.Unlock()

	err = svc.DeleteCategory(context.Background(), c.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict while products exist, got %v", err)
	}

	store.mu.Lock()
	delete(store.products, "p1")
	store.mu.Unlock()
	if err := svc.DeleteCategory(context.Background(), c.ID); err != nil {
		t.Fatalf("expected delete of empty category, got %v", err)
	}
}

func TestCatalogCreateProductGeneratesSKUs(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalogService(store)

	c, _ := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Office Supplies"})
	sub, err := svc.AddSubcategory(context.Background(), c.ID, &catalog.CreateSubcategoryRequest{Name: "Notebooks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := svc.CreateProduct(context.Background(), "staff-1", &catalog.CreateProductRequest{
		Name: "A5 Ruled", CategoryID: c.ID, SubcategoryID: sub.ID,
		MRP: 120, SellingPrice: 100, MOQ: 10,
		Variants: []catalog.Variant{{Name: "Red", MRP: 120, SellingPrice: 100}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(p.SKU, "OFF-NOT-") {
		t.Fatalf("unexpected SKU %q", p.SKU)
	}
	if len(p.Variants) != 1 || p.Variants[0].SKU != p.SKU+"-V01" {
		t.Fatalf("unexpected variant SKU: %+v", p.Variants)
	}
	if p.Currency != "INR" {
		t.Fatalf("expected default currency INR, got %q", p.Currency)
	}
	if p.CategoryName != "Office Supplies" || p.SubcategoryName != "Notebooks" {
		t.Fatalf("expected denormalized names, got %q/%q", p.CategoryName, p.SubcategoryName)
	}
}

func TestCatalogCreateProductSubcategoryMismatch(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalogService(store)

	c1, _ := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Pantry"})
	c2, _ := svc.CreateCategory(context.Background(), "staff-1", &catalog.CreateCategoryRequest{Name: "Hardware"})
	sub, _ := svc.AddSubcategory(context.Background(), c2.ID, &catalog.CreateSubcategoryRequest{Name: "Tools"})

	_, err := svc.CreateProduct(context.Background(), "staff-1", &catalog.CreateProductRequest{
		Name: "Hammer", CategoryID: c1.ID, SubcategoryID: sub.ID, MRP: 100, SellingPrice: 90,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for subcategory outside category, got %v", err)
	}
}

func TestCatalogGetProductCached(t *testing.T) {
	store := newMockStore()
	svc, cache := newCatalogService(store)
	productID := seedProduct(store, 500, 1)

	p, err := svc.GetProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.products[productID]; !ok {
		t.Fatal("expected product cached after read")
	}

	// A store failure now is invisible while the cache holds the entry.
	store.getProductErr = errors.New("db down")
	cached, err := svc.GetProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("expected cached read to succeed, got %v", err)
	}
	if cached.ID != p.ID {
		t.Fatalf("cache returned wrong product: %+v", cached)
	}
}

func TestCatalogUpdateProductInvalidatesCache(t *testing.T) {
	store := newMockStore()
	svc, cache := newCatalogService(store)
	productID := seedProduct(store, 500, 1)

	if _, err := svc.GetProduct(context.Background(), productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := int64(400)
	if _, err := svc.UpdateProduct(context.Background(), productID, &catalog.UpdateProductRequest{SellingPrice: &price}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.products[productID]; ok {
		t.Fatal("expected cache entry dropped after update")
	}
}

func TestCatalogUpdateProductPriceCrossCheck(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalogService(store)
	productID := seedProduct(store, 500, 1) // MRP = 500

	price := int64(600)
	_, err := svc.UpdateProduct(context.Background(), productID, &catalog.UpdateProductRequest{SellingPrice: &price})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for selling price above MRP, got %v", err)
	}
}

func TestCatalogUpdateProductMOQFloor(t *testing.T) {
	store := newMockStore()
	svc, _ := newCatalogService(store)
	productID := seedProduct(store, 500, 5)

	moq := 0
	p, err := svc.UpdateProduct(context.Background(), productID, &catalog.UpdateProductRequest{MOQ: &moq})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MOQ != 1 {
		t.Fatalf("expected MOQ floored to 1, got %d", p.MOQ)
	}
}
