// Package ristretto caches catalog reads in process using
// dgraph-io/ristretto.
package ristretto

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
)

const (
	categoriesKey = "catalog:categories"
	productPrefix = "catalog:product:"
)

// CatalogCache holds JSON-encoded catalog entries, costed by encoded
// size so maxCostBytes bounds actual memory use.
type CatalogCache struct {
	c   *ristretto.Cache[string, []byte]
	ttl time.Duration
}

// New creates a catalog cache holding at most maxCostBytes of encoded
// entries, each expiring after ttl.
func New(maxCostBytes int64, ttl time.Duration) (*CatalogCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CatalogCache{c: c, ttl: ttl}, nil
}

func (cc *CatalogCache) GetCategories(_ context.Context) ([]catalog.Category, bool) {
	data, found := cc.c.Get(categoriesKey)
	if !found {
		return nil, false
	}
	var categories []catalog.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		cc.c.Del(categoriesKey)
		return nil, false
	}
	return categories, true
}

func (cc *CatalogCache) SetCategories(_ context.Context, categories []catalog.Category) {
	if data, err := json.Marshal(categories); err == nil {
		cc.c.SetWithTTL(categoriesKey, data, int64(len(data)), cc.ttl)
	}
}

func (cc *CatalogCache) DropCategories(_ context.Context) {
	cc.c.Del(categoriesKey)
}

func (cc *CatalogCache) GetProduct(_ context.Context, id string) (*catalog.Product, bool) {
	data, found := cc.c.Get(productPrefix + id)
	if !found {
		return nil, false
	}
	var p catalog.Product
	if err := json.Unmarshal(data, &p); err != nil {
		cc.c.Del(productPrefix + id)
		return nil, false
	}
	return &p, true
}

func (cc *CatalogCache) SetProduct(_ context.Context, p *catalog.Product) {
	if data, err := json.Marshal(p); err == nil {
		cc.c.SetWithTTL(productPrefix+p.ID, data, int64(len(data)), cc.ttl)
	}
}

func (cc *CatalogCache) DropProduct(_ context.Context, id string) {
	cc.c.Del(productPrefix + id)
}

// Close shuts down the cache and releases resources.
func (cc *CatalogCache) Close() {
	cc.c.Close()
}
