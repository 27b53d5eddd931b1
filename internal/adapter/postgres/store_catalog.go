package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
)

// --- Categories ---

const categoryCols = `id, name, slug, image_url, display_order, active, products_count,
	        COALESCE(created_by::text, ''), created_at, updated_at`

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug, image_url, display_order, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, active, products_count, created_at, updated_at`,
		c.Name, c.Slug, c.ImageURL, c.DisplayOrder, nullIfEmpty(c.CreatedBy),
	).Scan(&c.ID, &c.Active, &c.ProductsCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q already exists: %w", c.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	c.Subcategories = []catalog.Subcategory{}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE id = $1`, id)

	c, err := scanCategory(row)
	if err != nil {
		return nil, notFoundWrap(err, "get category %s", id)
	}

	subs, err := s.listSubcategories(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Subcategories = subs
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	q := `SELECT ` + categoryCols + ` FROM categories`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY display_order ASC, created_at ASC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		subs, err := s.listSubcategories(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Subcategories = subs
	}
	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categories SET name = $2, slug = $3, image_url = $4, display_order = $5, active = $6, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.ImageURL, c.DisplayOrder, c.Active)
	return execExpectOne(tag, err, "update category %s", c.ID)
}

// DeleteCategory refuses to delete a category that still has products.
// Subcategories cascade with the category row.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var productCount int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE category_id = $1`, id,
	).Scan(&productCount); err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("category has %d products: %w", productCount, domain.ErrConflict)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err := execExpectOne(tag, err, "delete category %s", id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) AddSubcategory(ctx context.Context, categoryID string, sc *catalog.Subcategory) error {
	sc.CategoryID = categoryID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO subcategories (category_id, name, slug, image_url, display_order)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, products_count, created_at`,
		categoryID, sc.Name, sc.Slug, sc.ImageURL, sc.DisplayOrder,
	).Scan(&sc.ID, &sc.ProductsCount, &sc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subcategory %q already exists in category: %w", sc.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (s *Store) listSubcategories(ctx context.Context, categoryID string) ([]catalog.Subcategory, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, category_id, name, slug, image_url, display_order, products_count, created_at
		 FROM subcategories WHERE category_id = $1 ORDER BY display_order ASC, created_at ASC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	subs := []catalog.Subcategory{}
	for rows.Next() {
		var sc catalog.Subcategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.ImageURL,
			&sc.DisplayOrder, &sc.ProductsCount, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

// --- Products ---

const productCols = `id, sku, name, description, category_id, subcategory_id, category_name, subcategory_name,
	        mrp, selling_price, discount_percent, gst_percent, margin_percent, currency, moq,
	        variants, images, active, COALESCE(created_by::text, ''), created_at, updated_at`

// CreateProduct inserts the product and bumps the denormalized product
// counters on its category and subcategory in one transaction.
func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	variantsJSON, err := json.Marshal(orEmpty(p.Variants))
	if err != nil {
		return fmt.Errorf("marshal variants: %w", err)
	}
	imagesJSON, err := json.Marshal(orEmpty(p.Images))
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	err = tx.QueryRow(ctx,
		`INSERT INTO products (sku, name, description, category_id, subcategory_id, category_name, subcategory_name,
		         mrp, selling_price, discount_percent, gst_percent, margin_percent, currency, moq,
		         variants, images, active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id, created_at, updated_at`,
		p.SKU, p.Name, p.Description, p.CategoryID, p.SubcategoryID, p.CategoryName, p.SubcategoryName,
		p.MRP, p.SellingPrice, p.DiscountPercent, p.GSTPercent, p.MarginPercent, p.Currency, p.MOQ,
		variantsJSON, imagesJSON, p.Active, nullIfEmpty(p.CreatedBy),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q already exists: %w", p.SKU, domain.ErrConflict)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE categories SET products_count = products_count + 1 WHERE id = $1`, p.CategoryID); err != nil {
		return fmt.Errorf("bump category products_count: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE subcategories SET products_count = products_count + 1 WHERE id = $1`, p.SubcategoryID); err != nil {
		return fmt.Errorf("bump subcategory products_count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit product: %w", err)
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		return nil, notFoundWrap(err, "get product %s", id)
	}
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	variantsJSON, err := json.Marshal(orEmpty(p.Variants))
	if err != nil {
		return fmt.Errorf("marshal variants: %w", err)
	}
	imagesJSON, err := json.Marshal(orEmpty(p.Images))
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $2, description = $3, mrp = $4, selling_price = $5,
		         discount_percent = $6, gst_percent = $7, margin_percent = $8, moq = $9,
		         variants = $10, images = $11, active = $12, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.MRP, p.SellingPrice,
		p.DiscountPercent, p.GSTPercent, p.MarginPercent, p.MOQ,
		variantsJSON, imagesJSON, p.Active)
	return execExpectOne(tag, err, "update product %s", p.ID)
}

// SearchProducts returns a page of active products matching the filters.
func (s *Store) SearchProducts(ctx context.Context, req catalog.SearchRequest) (*catalog.SearchResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	where := []string{"active"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Query != "" {
		ph := arg("%" + req.Query + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", ph, ph))
	}
	if req.CategoryID != "" {
		where = append(where, "category_id = "+arg(req.CategoryID))
	}
	if req.SubcategoryID != "" {
		where = append(where, "subcategory_id = "+arg(req.SubcategoryID))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE `+cond, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := s.pool.Query(ctx,
		`SELECT `+productCols+` FROM products WHERE `+cond+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT %s OFFSET %s`, arg(limit), arg(offset)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages := (total + limit - 1) / limit
	return &catalog.SearchResult{
		Products: products,
		Page:     page,
		Limit:    limit,
		Total:    total,
		Pages:    pages,
	}, nil
}

func scanCategory(row scannable) (catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.DisplayOrder, &c.Active, &c.ProductsCount,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}

func scanProduct(row scannable) (catalog.Product, error) {
	var p catalog.Product
	var variantsJSON, imagesJSON []byte
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SubcategoryID,
		&p.CategoryName, &p.SubcategoryName,
		&p.MRP, &p.SellingPrice, &p.DiscountPercent, &p.GSTPercent, &p.MarginPercent, &p.Currency, &p.MOQ,
		&variantsJSON, &imagesJSON, &p.Active, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
		return p, fmt.Errorf("unmarshal variants: %w", err)
	}
	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return p, fmt.Errorf("unmarshal images: %w", err)
	}
	return p, nil
}
