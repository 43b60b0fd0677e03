// Package catalog provides the SQL-backed catalog repositories
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
)

type SeoTemplateRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewSeoTemplateRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *SeoTemplateRepository {
	return &SeoTemplateRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *SeoTemplateRepository) FindByID(storeID, id string) (*catalog.SeoTemplate, error) {
	if template, found := r.cache.GetSeoTemplate(storeID, id); found {
		return template, nil
	}

	template, err := r.loadFromDB(`id = ?`, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	r.cache.SetSeoTemplate(storeID, template)
	return template, nil
}

// FindByEntityType returns the active template for one entity type.
func (r *SeoTemplateRepository) FindByEntityType(storeID, entityType string) (*catalog.SeoTemplate, error) {
	if id, found := r.cache.GetSeoTemplateIDByEntityType(storeID, entityType); found {
		return r.FindByID(storeID, id)
	}

	template, err := r.loadFromDB(`entity_type = ? AND is_active = 1`, entityType)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	r.cache.SetSeoTemplate(storeID, template)
	return template, nil
}

func (r *SeoTemplateRepository) FindAll(storeID string) ([]*catalog.SeoTemplate, error) {
	query := `SELECT id, entity_type, title_pattern, description_pattern, keywords_pattern, is_active, created, changed FROM seo_templates ORDER BY entity_type`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seo templates: %w", err)
	}
	defer rows.Close()

	var templates []*catalog.SeoTemplate
	for rows.Next() {
		template, err := scanSeoTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seo template: %w", err)
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

func (r *SeoTemplateRepository) Store(storeID string, template *catalog.SeoTemplate) error {
	query := `INSERT INTO seo_templates (id, entity_type, title_pattern, description_pattern, keywords_pattern, is_active, created)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing seo template insert", "id", template.ID, "entityType", template.EntityType)

	if template.Created.IsZero() {
		template.Created = time.Now().UTC()
	}

	_, err := r.db.Exec(query, template.ID, template.EntityType, template.TitlePat,
		template.DescPat, template.KeywordsPat, template.IsActive, template.Created)
	if err != nil {
		r.logger.Database().Error("Seo template insert failed", "error", err.Error(), "id", template.ID)
		return fmt.Errorf("failed to insert seo template: %w", err)
	}

	r.logger.Database().Info("Seo template insert completed", "id", template.ID, "duration", time.Since(start))

	r.cache.SetSeoTemplate(storeID, template)
	return nil
}

func (r *SeoTemplateRepository) Update(storeID string, template *catalog.SeoTemplate) error {
	query := `UPDATE seo_templates SET entity_type = ?, title_pattern = ?, description_pattern = ?, keywords_pattern = ?, is_active = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing seo template update", "id", template.ID)

	now := time.Now().UTC()
	template.Changed = &now

	_, err := r.db.Exec(query, template.EntityType, template.TitlePat, template.DescPat,
		template.KeywordsPat, template.IsActive, now, template.ID)
	if err != nil {
		r.logger.Database().Error("Seo template update failed", "error", err.Error(), "id", template.ID)
		return fmt.Errorf("failed to update seo template: %w", err)
	}

	r.logger.Database().Info("Seo template update completed", "id", template.ID, "duration", time.Since(start))

	r.cache.InvalidateSeoTemplate(storeID, template.ID)
	r.cache.SetSeoTemplate(storeID, template)
	return nil
}

func (r *SeoTemplateRepository) Delete(storeID, id string) error {
	if _, err := r.db.Exec(`DELETE FROM seo_templates WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Seo template delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete seo template: %w", err)
	}

	r.cache.InvalidateSeoTemplate(storeID, id)
	return nil
}

func (r *SeoTemplateRepository) loadFromDB(where string, arg any) (*catalog.SeoTemplate, error) {
	query := `SELECT id, entity_type, title_pattern, description_pattern, keywords_pattern, is_active, created, changed FROM seo_templates WHERE ` + where

	row := r.db.QueryRow(query, arg)
	template, err := scanSeoTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan seo template: %w", err)
	}
	return template, nil
}

func scanSeoTemplate(row rowScanner) (*catalog.SeoTemplate, error) {
	var template catalog.SeoTemplate
	var keywords sql.NullString
	var changed sql.NullTime

	err := row.Scan(&template.ID, &template.EntityType, &template.TitlePat,
		&template.DescPat, &keywords, &template.IsActive, &template.Created, &changed)
	if err != nil {
		return nil, err
	}

	template.KeywordsPat = keywords.String
	if changed.Valid {
		template.Changed = &changed.Time
	}
	return &template, nil
}
