// Package i18n provides the SQL-backed language and translation
// repositories.
package i18n

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

const languageColumns = `id, code, name, is_default, is_active`

// LanguageRepository implements language persistence with cache-first reads.
type LanguageRepository struct {
	db     *sql.DB
	cache  interfaces.ConfigCache
	logger *logging.ChanneledLogger
}

func NewLanguageRepository(db *sql.DB, cache interfaces.ConfigCache, logger *logging.ChanneledLogger) *LanguageRepository {
	return &LanguageRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *LanguageRepository) FindAll(storeID string) ([]*i18n.Language, error) {
	if languages, found := r.cache.GetLanguages(storeID); found {
		return languages, nil
	}
	return r.loadAndCache(storeID)
}

func (r *LanguageRepository) FindDefault(storeID string) (*i18n.Language, error) {
	languages, err := r.FindAll(storeID)
	if err != nil {
		return nil, err
	}
	for _, language := range languages {
		if language.IsDefault {
			return language, nil
		}
	}
	return nil, nil
}

func (r *LanguageRepository) Store(storeID string, language *i18n.Language) error {
	query := `INSERT INTO languages (id, code, name, is_default, is_active)
	          VALUES (?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing language insert", "languageId", language.ID, "code", language.Code)

	_, err := r.db.Exec(query, language.ID, language.Code, language.Name,
		boolToInt(language.IsDefault), boolToInt(language.IsActive))
	if err != nil {
		r.logger.Database().Error("Language insert failed", "error", err.Error(), "code", language.Code)
		return fmt.Errorf("failed to insert language: %w", err)
	}

	r.logger.Database().Info("Language insert completed", "code", language.Code, "duration", time.Since(start))

	r.cache.InvalidateConfigCache(storeID)
	return nil
}

func (r *LanguageRepository) Update(storeID string, language *i18n.Language) error {
	query := `UPDATE languages SET code = ?, name = ?, is_default = ?, is_active = ?
	          WHERE id = ?`

	result, err := r.db.Exec(query, language.Code, language.Name,
		boolToInt(language.IsDefault), boolToInt(language.IsActive), language.ID)
	if err != nil {
		r.logger.Database().Error("Language update failed", "error", err.Error(), "languageId", language.ID)
		return fmt.Errorf("failed to update language: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("language not found: %s", language.ID)
	}

	r.cache.InvalidateConfigCache(storeID)
	return nil
}

func (r *LanguageRepository) Delete(storeID, id string) error {
	result, err := r.db.Exec(`DELETE FROM languages WHERE id = ?`, id)
	if err != nil {
		r.logger.Database().Error("Language delete failed", "error", err.Error(), "languageId", id)
		return fmt.Errorf("failed to delete language: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("language not found: %s", id)
	}

	r.cache.InvalidateConfigCache(storeID)
	return nil
}

func (r *LanguageRepository) loadAndCache(storeID string) ([]*i18n.Language, error) {
	query := fmt.Sprintf(`SELECT %s FROM languages ORDER BY is_default DESC, code`, languageColumns)

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query languages", "error", err.Error())
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}
	defer rows.Close()

	var languages []*i18n.Language
	defaultCode := ""
	for rows.Next() {
		var language i18n.Language
		var isDefault, isActive int
		if err := rows.Scan(&language.ID, &language.Code, &language.Name, &isDefault, &isActive); err != nil {
			r.logger.Database().Error("Failed to scan language", "error", err.Error())
			continue
		}
		language.IsDefault = isDefault != 0
		language.IsActive = isActive != 0
		if language.IsDefault {
			defaultCode = language.Code
		}
		languages = append(languages, &language)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetLanguages(storeID, languages, defaultCode)
	return languages, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
