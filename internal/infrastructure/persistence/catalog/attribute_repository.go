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

type AttributeRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewAttributeRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *AttributeRepository {
	return &AttributeRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *AttributeRepository) FindByID(storeID, id string) (*catalog.Attribute, error) {
	if attribute, found := r.cache.GetAttribute(storeID, id); found {
		return attribute, nil
	}

	attribute, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return nil, nil
	}

	r.cache.SetAttribute(storeID, attribute)
	return attribute, nil
}

func (r *AttributeRepository) FindByCode(storeID, code string) (*catalog.Attribute, error) {
	if id, found := r.cache.GetAttributeIDByCode(storeID, code); found {
		return r.FindByID(storeID, id)
	}

	var id string
	err := r.db.QueryRow(`SELECT id FROM attributes WHERE code = ?`, code).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attribute code: %w", err)
	}

	return r.FindByID(storeID, id)
}

// FindFilterable returns the attributes shown in layered navigation,
// in sort order.
func (r *AttributeRepository) FindFilterable(storeID string) ([]*catalog.Attribute, error) {
	all, err := r.FindAll(storeID)
	if err != nil {
		return nil, err
	}

	var filterable []*catalog.Attribute
	for _, attribute := range all {
		if attribute.IsFilterable {
			filterable = append(filterable, attribute)
		}
	}
	sort.SliceStable(filterable, func(i, j int) bool {
		return filterable[i].SortOrder < filterable[j].SortOrder
	})
	return filterable, nil
}

func (r *AttributeRepository) FindAll(storeID string) ([]*catalog.Attribute, error) {
	if ids, found := r.cache.GetAllAttributeIDs(storeID); found {
		return r.findByIDs(storeID, ids)
	}

	ids, err := r.loadAllIDsFromDB(storeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Attribute{}, nil
	}

	r.cache.SetAllAttributeIDs(storeID, ids)
	return r.findByIDs(storeID, ids)
}

func (r *AttributeRepository) findByIDs(storeID string, ids []string) ([]*catalog.Attribute, error) {
	var result []*catalog.Attribute
	var missingIDs []string

	for _, id := range ids {
		if attribute, found := r.cache.GetAttribute(storeID, id); found {
			result = append(result, attribute)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missing, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}
		for _, attribute := range missing {
			r.cache.SetAttribute(storeID, attribute)
			result = append(result, attribute)
		}
	}

	return result, nil
}

func (r *AttributeRepository) Store(storeID string, attribute *catalog.Attribute) error {
	query := `INSERT INTO attributes (id, code, label, filter_type, is_filterable, sort_order) VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing attribute insert", "id", attribute.ID, "code", attribute.Code)

	_, err := r.db.Exec(query, attribute.ID, attribute.Code, attribute.Label,
		attribute.FilterType, attribute.IsFilterable, attribute.SortOrder)
	if err != nil {
		r.logger.Database().Error("Attribute insert failed", "error", err.Error(), "id", attribute.ID)
		return fmt.Errorf("failed to insert attribute: %w", err)
	}

	r.logger.Database().Info("Attribute insert completed", "id", attribute.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetAttribute(storeID, attribute)
	return nil
}

func (r *AttributeRepository) Update(storeID string, attribute *catalog.Attribute) error {
	query := `UPDATE attributes SET code = ?, label = ?, filter_type = ?, is_filterable = ?, sort_order = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing attribute update", "id", attribute.ID)

	_, err := r.db.Exec(query, attribute.Code, attribute.Label, attribute.FilterType,
		attribute.IsFilterable, attribute.SortOrder, attribute.ID)
	if err != nil {
		r.logger.Database().Error("Attribute update failed", "error", err.Error(), "id", attribute.ID)
		return fmt.Errorf("failed to update attribute: %w", err)
	}

	r.logger.Database().Info("Attribute update completed", "id", attribute.ID, "duration", time.Since(start))

	r.cache.InvalidateAttribute(storeID, attribute.ID)
	r.cache.SetAttribute(storeID, attribute)
	return nil
}

func (r *AttributeRepository) Delete(storeID, id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing attribute delete", "id", id)

	if _, err := r.db.Exec(`DELETE FROM attributes WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Attribute delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete attribute: %w", err)
	}

	r.logger.Database().Info("Attribute delete completed", "id", id, "duration", time.Since(start))

	r.cache.InvalidateAttribute(storeID, id)
	return nil
}

func (r *AttributeRepository) loadAllIDsFromDB(storeID string) ([]string, error) {
	query := `SELECT id FROM attributes ORDER BY sort_order, code`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan attribute ID: %w", err)
		}
		ids = append(ids, id)
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return ids, rows.Err()
}

func (r *AttributeRepository) loadFromDB(id string) (*catalog.Attribute, error) {
	row := r.db.QueryRow(`SELECT id, code, label, filter_type, is_filterable, sort_order FROM attributes WHERE id = ?`, id)

	attribute, err := scanAttribute(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan attribute: %w", err)
	}
	return attribute, nil
}

func (r *AttributeRepository) loadMultipleFromDB(ids []string) ([]*catalog.Attribute, error) {
	if len(ids) == 0 {
		return []*catalog.Attribute{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, code, label, filter_type, is_filterable, sort_order FROM attributes WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	var attributes []*catalog.Attribute
	for rows.Next() {
		attribute, err := scanAttribute(rows)
		if err != nil {
			continue
		}
		attributes = append(attributes, attribute)
	}
	return attributes, rows.Err()
}

func scanAttribute(row rowScanner) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	err := row.Scan(&attribute.ID, &attribute.Code, &attribute.Label,
		&attribute.FilterType, &attribute.IsFilterable, &attribute.SortOrder)
	if err != nil {
		return nil, err
	}
	return &attribute, nil
}
