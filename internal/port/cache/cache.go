// Package cache defines the catalog read-cache port.
package cache

import (
	"context"

	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
)

// Catalog caches the two hot public catalog reads: the active category
// list and individual products. Implementations own key layout and TTL.
// A miss is reported as ok == false, never as an error; writes are
// best-effort.
type Catalog interface {
	GetCategories(ctx context.Context) (categories []catalog.Category, ok bool)
	SetCategories(ctx context.Context, categories []catalog.Category)
	DropCategories(ctx context.Context)

	GetProduct(ctx context.Context, id string) (p *catalog.Product, ok bool)
	SetProduct(ctx context.Context, p *catalog.Product)
	DropProduct(ctx context.Context, id string)
}
