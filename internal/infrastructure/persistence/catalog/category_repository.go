// Package catalog provides the SQL-backed catalog repositories
package catalog

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

type CategoryRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewCategoryRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CategoryRepository) FindByID(storeID, id string) (*catalog.Category, error) {
	if category, found := r.cache.GetCategory(storeID, id); found {
		return category, nil
	}

	category, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}

	r.cache.SetCategory(storeID, category)
	return category, nil
}

func (r *CategoryRepository) FindBySlug(storeID, slug string) (*catalog.Category, error) {
	if id, found := r.cache.GetCategoryIDBySlug(storeID, slug); found {
		return r.FindByID(storeID, id)
	}

	var id string
	err := r.db.QueryRow(`SELECT id FROM categories WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category slug: %w", err)
	}

	return r.FindByID(storeID, id)
}

// FindChildren returns the direct children of one category, in sort order.
func (r *CategoryRepository) FindChildren(storeID, parentID string) ([]*catalog.Category, error) {
	all, err := r.FindAll(storeID)
	if err != nil {
		return nil, err
	}

	var children []*catalog.Category
	for _, category := range all {
		if category.ParentID == parentID {
			children = append(children, category)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].SortOrder < children[j].SortOrder
	})
	return children, nil
}

func (r *CategoryRepository) FindAll(storeID string) ([]*catalog.Category, error) {
	if ids, found := r.cache.GetAllCategoryIDs(storeID); found {
		return r.findByIDs(storeID, ids)
	}

	ids, err := r.loadAllIDsFromDB(storeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Category{}, nil
	}

	r.cache.SetAllCategoryIDs(storeID, ids)
	return r.findByIDs(storeID, ids)
}

func (r *CategoryRepository) findByIDs(storeID string, ids []string) ([]*catalog.Category, error) {
	var result []*catalog.Category
	var missingIDs []string

	for _, id := range ids {
		if category, found := r.cache.GetCategory(storeID, id); found {
			result = append(result, category)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missing, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}
		for _, category := range missing {
			r.cache.SetCategory(storeID, category)
			result = append(result, category)
		}
	}

	return result, nil
}

func (r *CategoryRepository) Store(storeID string, category *catalog.Category) error {
	query := `INSERT INTO categories (id, name, slug, parent_id, description, image_url, sort_order, is_active, created)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing category insert", "id", category.ID)

	if category.Created.IsZero() {
		category.Created = time.Now().UTC()
	}

	_, err := r.db.Exec(query, category.ID, category.Name, category.Slug,
		nullableString(category.ParentID), category.Description, category.ImageURL,
		category.SortOrder, category.IsActive, category.Created)
	if err != nil {
		r.logger.Database().Error("Category insert failed", "error", err.Error(), "id", category.ID)
		return fmt.Errorf("failed to insert category: %w", err)
	}

	r.logger.Database().Info("Category insert completed", "id", category.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetCategory(storeID, category)
	r.cache.AddCategoryID(storeID, category.ID)
	return nil
}

func (r *CategoryRepository) Update(storeID string, category *catalog.Category) error {
	query := `UPDATE categories SET name = ?, slug = ?, parent_id = ?, description = ?, image_url = ?, sort_order = ?, is_active = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing category update", "id", category.ID)

	now := time.Now().UTC()
	category.Changed = &now

	_, err := r.db.Exec(query, category.Name, category.Slug,
		nullableString(category.ParentID), category.Description, category.ImageURL,
		category.SortOrder, category.IsActive, now, category.ID)
	if err != nil {
		r.logger.Database().Error("Category update failed", "error", err.Error(), "id", category.ID)
		return fmt.Errorf("failed to update category: %w", err)
	}

	r.logger.Database().Info("Category update completed", "id", category.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.InvalidateCategory(storeID, category.ID)
	r.cache.SetCategory(storeID, category)
	return nil
}

func (r *CategoryRepository) Delete(storeID, id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing category delete", "id", id)

	if _, err := r.db.Exec(`DELETE FROM product_categories WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category product links: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Category delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	r.logger.Database().Info("Category delete completed", "id", id, "duration", time.Since(start))

	r.cache.InvalidateCategory(storeID, id)
	r.cache.RemoveCategoryID(storeID, id)
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *CategoryRepository) loadAllIDsFromDB(storeID string) ([]string, error) {
	query := `SELECT id FROM categories ORDER BY sort_order, name`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query category IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category ID: %w", err)
		}
		ids = append(ids, id)
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return ids, rows.Err()
}

const categoryColumns = `id, name, slug, parent_id, description, image_url, sort_order, is_active, created, changed`

func (r *CategoryRepository) loadFromDB(id string) (*catalog.Category, error) {
	row := r.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	category, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan category", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) loadMultipleFromDB(ids []string) ([]*catalog.Category, error) {
	if len(ids) == 0 {
		return []*catalog.Category{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			continue
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanCategory(row rowScanner) (*catalog.Category, error) {
	var category catalog.Category
	var parentID, description, imageURL sql.NullString
	var changed sql.NullTime

	err := row.Scan(&category.ID, &category.Name, &category.Slug, &parentID,
		&description, &imageURL, &category.SortOrder, &category.IsActive,
		&category.Created, &changed)
	if err != nil {
		return nil, err
	}

	category.ParentID = parentID.String
	category.Description = description.String
	category.ImageURL = imageURL.String
	if changed.Valid {
		category.Changed = &changed.Time
	}
	return &category, nil
}
