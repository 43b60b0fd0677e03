// Package catalog provides the SQL-backed catalog repositories
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

type ProductRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewProductRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(storeID, id string) (*catalog.Product, error) {
	if product, found := r.cache.GetProduct(storeID, id); found {
		return product, nil
	}

	product, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	r.cache.SetProduct(storeID, product)
	return product, nil
}

func (r *ProductRepository) FindBySlug(storeID, slug string) (*catalog.Product, error) {
	if id, found := r.cache.GetProductIDBySlug(storeID, slug); found {
		return r.FindByID(storeID, id)
	}

	query := `SELECT id FROM products WHERE slug = ?`
	var id string
	err := r.db.QueryRow(query, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product slug: %w", err)
	}

	return r.FindByID(storeID, id)
}

// FindByCategory returns the active products assigned to one category.
func (r *ProductRepository) FindByCategory(storeID, categoryID string) ([]*catalog.Product, error) {
	if ids, found := r.cache.GetProductIDsByCategory(storeID, categoryID); found {
		return r.FindByIDs(storeID, ids)
	}

	query := `SELECT p.id FROM products p
	          JOIN product_categories pc ON pc.product_id = p.id
	          WHERE pc.category_id = ? AND p.is_active = 1
	          ORDER BY p.created DESC`

	start := time.Now()
	rows, err := r.db.Query(query, categoryID)
	if err != nil {
		r.logger.Database().Error("Failed to query products by category", "error", err.Error(), "categoryId", categoryID)
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetProductIDsByCategory(storeID, categoryID, ids)
	return r.FindByIDs(storeID, ids)
}

// FindAll retrieves all products for a store, employing a cache-first strategy.
func (r *ProductRepository) FindAll(storeID string) ([]*catalog.Product, error) {
	if ids, found := r.cache.GetAllProductIDs(storeID); found {
		return r.FindByIDs(storeID, ids)
	}

	ids, err := r.loadAllIDsFromDB(storeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	r.cache.SetAllProductIDs(storeID, ids)
	return r.FindByIDs(storeID, ids)
}

func (r *ProductRepository) FindByIDs(storeID string, ids []string) ([]*catalog.Product, error) {
	var result []*catalog.Product
	var missingIDs []string

	for _, id := range ids {
		if product, found := r.cache.GetProduct(storeID, id); found {
			result = append(result, product)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missing, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}

		for _, product := range missing {
			r.cache.SetProduct(storeID, product)
			result = append(result, product)
		}
	}

	return result, nil
}

func (r *ProductRepository) Store(storeID string, product *catalog.Product) error {
	attributesJSON, _ := json.Marshal(product.Attributes)
	imagesJSON, _ := json.Marshal(product.Images)

	query := `INSERT INTO products (id, name, slug, sku, description, price, compare_price, stock_qty, manage_stock, is_new, is_featured, is_active, attributes, images, created)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing product insert", "id", product.ID)

	if product.Created.IsZero() {
		product.Created = time.Now().UTC()
	}

	_, err := r.db.Exec(query,
		product.ID, product.Name, product.Slug, product.SKU, product.Description,
		product.Price.String(), comparePriceValue(product), product.StockQty,
		product.ManageStock, product.IsNew, product.IsFeatured, product.IsActive,
		string(attributesJSON), string(imagesJSON), product.Created)
	if err != nil {
		r.logger.Database().Error("Product insert failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := r.syncCategoryLinks(product); err != nil {
		return err
	}

	r.logger.Database().Info("Product insert completed", "id", product.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetProduct(storeID, product)
	r.cache.AddProductID(storeID, product.ID)
	return nil
}

func (r *ProductRepository) Update(storeID string, product *catalog.Product) error {
	attributesJSON, _ := json.Marshal(product.Attributes)
	imagesJSON, _ := json.Marshal(product.Images)

	query := `UPDATE products SET name = ?, slug = ?, sku = ?, description = ?, price = ?, compare_price = ?, stock_qty = ?, manage_stock = ?, is_new = ?, is_featured = ?, is_active = ?, attributes = ?, images = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing product update", "id", product.ID)

	now := time.Now().UTC()
	product.Changed = &now

	_, err := r.db.Exec(query,
		product.Name, product.Slug, product.SKU, product.Description,
		product.Price.String(), comparePriceValue(product), product.StockQty,
		product.ManageStock, product.IsNew, product.IsFeatured, product.IsActive,
		string(attributesJSON), string(imagesJSON), now, product.ID)
	if err != nil {
		r.logger.Database().Error("Product update failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if err := r.syncCategoryLinks(product); err != nil {
		return err
	}

	r.logger.Database().Info("Product update completed", "id", product.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	// Invalidate first so dependent fragments drop, then re-prime
	r.cache.InvalidateProduct(storeID, product.ID)
	r.cache.SetProduct(storeID, product)
	return nil
}

func (r *ProductRepository) Delete(storeID, id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing product delete", "id", id)

	if _, err := r.db.Exec(`DELETE FROM product_categories WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product category links: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Product delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Database().Info("Product delete completed", "id", id, "duration", time.Since(start))

	r.cache.InvalidateProduct(storeID, id)
	r.cache.RemoveProductID(storeID, id)
	return nil
}

// syncCategoryLinks replaces the product's category assignments.
func (r *ProductRepository) syncCategoryLinks(product *catalog.Product) error {
	if _, err := r.db.Exec(`DELETE FROM product_categories WHERE product_id = ?`, product.ID); err != nil {
		return fmt.Errorf("failed to clear product category links: %w", err)
	}
	for _, categoryID := range product.CategoryIDs {
		linkID := product.ID + ":" + categoryID
		_, err := r.db.Exec(`INSERT INTO product_categories (id, product_id, category_id) VALUES (?, ?, ?)`,
			linkID, product.ID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to link product to category %s: %w", categoryID, err)
		}
	}
	return nil
}

func comparePriceValue(product *catalog.Product) any {
	if product.ComparePrice == nil {
		return nil
	}
	return product.ComparePrice.String()
}

func (r *ProductRepository) loadAllIDsFromDB(storeID string) ([]string, error) {
	query := `SELECT id FROM products ORDER BY created DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all product IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query product IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product ID: %w", err)
		}
		ids = append(ids, id)
	}

	r.logger.Database().Info("Loaded product IDs from database", "count", len(ids), "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return ids, rows.Err()
}

const productColumns = `id, name, slug, sku, description, price, compare_price, stock_qty, manage_stock, is_new, is_featured, is_active, attributes, images, created, changed`

func (r *ProductRepository) loadFromDB(id string) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	row := r.db.QueryRow(query, id)
	product, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan product", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if err := r.loadCategoryLinks(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) loadMultipleFromDB(ids []string) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple products from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple products", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			// Skip malformed records but continue processing others
			continue
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, product := range products {
		if err := r.loadCategoryLinks(product); err != nil {
			return nil, err
		}
	}

	r.logger.Database().Info("Multiple products loaded from database", "requested", len(ids), "loaded", len(products), "duration", time.Since(start))
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepository) scanProduct(row rowScanner) (*catalog.Product, error) {
	var product catalog.Product
	var priceStr string
	var comparePrice, description, attributesStr, imagesStr sql.NullString
	var changed sql.NullTime

	err := row.Scan(&product.ID, &product.Name, &product.Slug, &product.SKU, &description,
		&priceStr, &comparePrice, &product.StockQty, &product.ManageStock,
		&product.IsNew, &product.IsFeatured, &product.IsActive,
		&attributesStr, &imagesStr, &product.Created, &changed)
	if err != nil {
		return nil, err
	}

	product.Description = description.String

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid product price %q: %w", priceStr, err)
	}
	product.Price = price

	if comparePrice.Valid && comparePrice.String != "" {
		cp, err := decimal.NewFromString(comparePrice.String)
		if err != nil {
			return nil, fmt.Errorf("invalid compare price %q: %w", comparePrice.String, err)
		}
		product.ComparePrice = &cp
	}

	if attributesStr.Valid && attributesStr.String != "" {
		if err := json.Unmarshal([]byte(attributesStr.String), &product.Attributes); err != nil {
			return nil, fmt.Errorf("failed to parse product attributes: %w", err)
		}
	}
	if imagesStr.Valid && imagesStr.String != "" {
		if err := json.Unmarshal([]byte(imagesStr.String), &product.Images); err != nil {
			return nil, fmt.Errorf("failed to parse product images: %w", err)
		}
	}
	if changed.Valid {
		product.Changed = &changed.Time
	}

	return &product, nil
}

func (r *ProductRepository) loadCategoryLinks(product *catalog.Product) error {
	rows, err := r.db.Query(`SELECT category_id FROM product_categories WHERE product_id = ?`, product.ID)
	if err != nil {
		return fmt.Errorf("failed to query product categories: %w", err)
	}
	defer rows.Close()

	product.CategoryIDs = nil
	for rows.Next() {
		var categoryID string
		if err := rows.Scan(&categoryID); err != nil {
			return fmt.Errorf("failed to scan category link: %w", err)
		}
		product.CategoryIDs = append(product.CategoryIDs, categoryID)
	}
	return rows.Err()
}
