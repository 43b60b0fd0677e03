// Package database provides store instantiation
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
)

// TableCreator handles the creation of the database schema for a new store.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the store's database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default content required for a new store to function.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	// Idempotently create the default English language.
	var languageID string
	err := db.QueryRow("SELECT id FROM languages WHERE code = 'en'").Scan(&languageID)
	if err == sql.ErrNoRows {
		languageID = security.GenerateULID()
		_, err = db.Exec(`INSERT INTO languages (id, code, name, is_default, is_active) VALUES (?, ?, ?, 1, 1)`,
			languageID, "en", "English")
		if err != nil {
			return fmt.Errorf("failed to insert default language: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check for default language: %w", err)
	}

	// Idempotently create a published category layout so a fresh store renders.
	var layoutExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM slot_layouts WHERE page_type = 'category' AND published = 1)").Scan(&layoutExists)
	if err != nil {
		return fmt.Errorf("failed to check for default layout: %w", err)
	}

	if !layoutExists {
		layoutID := security.GenerateULID()
		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO slot_layouts (id, page_type, name, published, slots, created) VALUES (?, ?, ?, 1, ?, ?)`,
			layoutID, "category", "Default Category Layout", defaultCategorySlots, now)
		if err != nil {
			return fmt.Errorf("failed to insert default layout: %w", err)
		}
	}

	// Seed the metered-operation credit costs once.
	var costCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM credit_costs").Scan(&costCount); err != nil {
		return fmt.Errorf("failed to check credit costs: %w", err)
	}
	if costCount == 0 {
		for operation, credits := range defaultCreditCosts {
			_, err = db.Exec(`INSERT INTO credit_costs (operation, credits) VALUES (?, ?)`, operation, credits)
			if err != nil {
				return fmt.Errorf("failed to insert credit cost for %s: %w", operation, err)
			}
		}
	}

	return nil
}

var defaultCreditCosts = map[string]int{
	"quick_translate": 1,
	"seo_generate":    2,
	"image_describe":  1,
}

const defaultCategorySlots = `[{"id":"header","type":"component","component":"category_header","position":{"row":0,"col":0},"colSpan":12},{"id":"filters","type":"component","component":"filter_sidebar","position":{"row":1,"col":0},"colSpan":3},{"id":"grid","type":"component","component":"product_grid","position":{"row":1,"col":3},"colSpan":9},{"id":"pagination","type":"component","component":"pagination","position":{"row":2,"col":3},"colSpan":9}]`

// Schema definitions
var tables = []string{
	`CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, sku TEXT NOT NULL, description TEXT, price TEXT NOT NULL, compare_price TEXT, stock_qty INTEGER NOT NULL DEFAULT 0, manage_stock BOOLEAN NOT NULL DEFAULT 0, is_new BOOLEAN NOT NULL DEFAULT 0, is_featured BOOLEAN NOT NULL DEFAULT 0, is_active BOOLEAN NOT NULL DEFAULT 1, attributes TEXT, images TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS categories (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, parent_id TEXT REFERENCES categories(id), description TEXT, image_url TEXT, sort_order INTEGER NOT NULL DEFAULT 0, is_active BOOLEAN NOT NULL DEFAULT 1, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS product_categories (id TEXT PRIMARY KEY, product_id TEXT NOT NULL REFERENCES products(id), category_id TEXT NOT NULL REFERENCES categories(id), UNIQUE(product_id, category_id))`,
	`CREATE TABLE IF NOT EXISTS attributes (id TEXT PRIMARY KEY, code TEXT NOT NULL UNIQUE, label TEXT NOT NULL, filter_type TEXT NOT NULL, is_filterable BOOLEAN NOT NULL DEFAULT 1, sort_order INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS slot_layouts (id TEXT PRIMARY KEY, page_type TEXT NOT NULL, name TEXT NOT NULL, published BOOLEAN NOT NULL DEFAULT 0, slots TEXT NOT NULL, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS coupons (id TEXT PRIMARY KEY, code TEXT NOT NULL UNIQUE, type TEXT NOT NULL, value TEXT NOT NULL, usage_limit INTEGER NOT NULL DEFAULT 0, used_count INTEGER NOT NULL DEFAULT 0, starts_at TIMESTAMP, ends_at TIMESTAMP, is_active BOOLEAN NOT NULL DEFAULT 1, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS seo_templates (id TEXT PRIMARY KEY, entity_type TEXT NOT NULL, title_pattern TEXT NOT NULL, description_pattern TEXT NOT NULL, keywords_pattern TEXT, is_active BOOLEAN NOT NULL DEFAULT 1, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS ab_tests (id TEXT PRIMARY KEY, name TEXT NOT NULL, status TEXT NOT NULL DEFAULT 'draft', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS ab_test_variants (id TEXT PRIMARY KEY, test_id TEXT NOT NULL REFERENCES ab_tests(id), name TEXT NOT NULL, weight INTEGER NOT NULL DEFAULT 1, impressions INTEGER NOT NULL DEFAULT 0, conversions INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE IF NOT EXISTS languages (id TEXT PRIMARY KEY, code TEXT NOT NULL UNIQUE, name TEXT NOT NULL, is_default BOOLEAN NOT NULL DEFAULT 0, is_active BOOLEAN NOT NULL DEFAULT 1)`,
	`CREATE TABLE IF NOT EXISTS translations (id TEXT PRIMARY KEY, language TEXT NOT NULL, entity_type TEXT NOT NULL, entity_id TEXT, key TEXT NOT NULL, value TEXT NOT NULL, changed TIMESTAMP, UNIQUE(language, entity_type, entity_id, key))`,
	`CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL, changed TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS events (id TEXT PRIMARY KEY, name TEXT NOT NULL, session_id TEXT, payload TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS credit_costs (operation TEXT PRIMARY KEY, credits INTEGER NOT NULL, description TEXT)`,
	`CREATE TABLE IF NOT EXISTS credit_ledger (id TEXT PRIMARY KEY, operation TEXT NOT NULL, delta INTEGER NOT NULL, balance INTEGER NOT NULL, note TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_categories_product ON product_categories(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_categories_category ON product_categories(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_slot_layouts_page_type ON slot_layouts(page_type, published)`,
	`CREATE INDEX IF NOT EXISTS idx_coupons_code ON coupons(code)`,
	`CREATE INDEX IF NOT EXISTS idx_translations_lookup ON translations(language, entity_type)`,
	`CREATE INDEX IF NOT EXISTS idx_events_name_created ON events(name, created)`,
	`CREATE INDEX IF NOT EXISTS idx_events_created ON events(created)`,
	`CREATE INDEX IF NOT EXISTS idx_ab_test_variants_test ON ab_test_variants(test_id)`,
}
