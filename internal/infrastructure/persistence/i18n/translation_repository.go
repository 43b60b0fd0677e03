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

const translationColumns = `id, language, entity_type, entity_id, key, value, changed`

// TranslationRepository implements translation persistence. UI labels
// are cached per language; entity translations are loaded on demand.
type TranslationRepository struct {
	db     *sql.DB
	cache  interfaces.ConfigCache
	logger *logging.ChanneledLogger
}

func NewTranslationRepository(db *sql.DB, cache interfaces.ConfigCache, logger *logging.ChanneledLogger) *TranslationRepository {
	return &TranslationRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *TranslationRepository) FindByLanguage(storeID, language string) ([]*i18n.Translation, error) {
	query := fmt.Sprintf(`SELECT %s FROM translations WHERE language = ? ORDER BY entity_type, entity_id, key`, translationColumns)

	start := time.Now()
	rows, err := r.db.Query(query, language)
	if err != nil {
		r.logger.Database().Error("Failed to query translations", "error", err.Error(), "language", language)
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var translations []*i18n.Translation
	for rows.Next() {
		translation, err := scanTranslation(rows)
		if err != nil {
			r.logger.Database().Error("Failed to scan translation", "error", err.Error())
			continue
		}
		translations = append(translations, translation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return translations, nil
}

func (r *TranslationRepository) FindUILabels(storeID, language string) (map[string]string, error) {
	if labels, found := r.cache.GetUILabels(storeID, language); found {
		return labels, nil
	}

	query := `SELECT key, value FROM translations WHERE language = ? AND entity_type = 'ui'`

	start := time.Now()
	rows, err := r.db.Query(query, language)
	if err != nil {
		r.logger.Database().Error("Failed to query UI labels", "error", err.Error(), "language", language)
		return nil, fmt.Errorf("failed to query UI labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan UI label: %w", err)
		}
		labels[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetUILabels(storeID, language, labels)
	return labels, nil
}

func (r *TranslationRepository) FindEntityValues(storeID, language, entityType string) (map[string]map[string]string, error) {
	query := `SELECT entity_id, key, value FROM translations WHERE language = ? AND entity_type = ?`

	start := time.Now()
	rows, err := r.db.Query(query, language, entityType)
	if err != nil {
		r.logger.Database().Error("Failed to query entity translations", "error", err.Error(),
			"language", language, "entityType", entityType)
		return nil, fmt.Errorf("failed to query entity translations: %w", err)
	}
	defer rows.Close()

	values := make(map[string]map[string]string)
	for rows.Next() {
		var entityID, key, value string
		if err := rows.Scan(&entityID, &key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan entity translation: %w", err)
		}
		if values[entityID] == nil {
			values[entityID] = make(map[string]string)
		}
		values[entityID][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return values, nil
}

func (r *TranslationRepository) Upsert(storeID string, translation *i18n.Translation) error {
	now := time.Now().UTC()
	translation.Changed = &now

	query := `INSERT INTO translations (id, language, entity_type, entity_id, key, value, changed)
	          VALUES (?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(language, entity_type, entity_id, key)
	          DO UPDATE SET value = excluded.value, changed = excluded.changed`

	start := time.Now()
	r.logger.Database().Debug("Executing translation upsert",
		"language", translation.Language, "entityType", translation.EntityType, "key", translation.Key)

	_, err := r.db.Exec(query, translation.ID, translation.Language, translation.EntityType,
		translation.EntityID, translation.Key, translation.Value, translation.Changed)
	if err != nil {
		r.logger.Database().Error("Translation upsert failed", "error", err.Error(), "key", translation.Key)
		return fmt.Errorf("failed to upsert translation: %w", err)
	}

	r.logger.Database().Info("Translation upsert completed", "key", translation.Key, "duration", time.Since(start))

	if translation.EntityType == "ui" {
		r.cache.InvalidateUILabels(storeID, translation.Language)
	}
	return nil
}

func (r *TranslationRepository) Delete(storeID, id string) error {
	var language, entityType string
	err := r.db.QueryRow(`SELECT language, entity_type FROM translations WHERE id = ?`, id).
		Scan(&language, &entityType)
	if err == sql.ErrNoRows {
		return fmt.Errorf("translation not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load translation: %w", err)
	}

	if _, err := r.db.Exec(`DELETE FROM translations WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Translation delete failed", "error", err.Error(), "translationId", id)
		return fmt.Errorf("failed to delete translation: %w", err)
	}

	if entityType == "ui" {
		r.cache.InvalidateUILabels(storeID, language)
	}
	return nil
}

func scanTranslation(rows *sql.Rows) (*i18n.Translation, error) {
	var translation i18n.Translation
	var entityID sql.NullString
	var changed sql.NullTime

	err := rows.Scan(&translation.ID, &translation.Language, &translation.EntityType,
		&entityID, &translation.Key, &translation.Value, &changed)
	if err != nil {
		return nil, err
	}

	translation.EntityID = entityID.String
	if changed.Valid {
		translation.Changed = &changed.Time
	}
	return &translation, nil
}
