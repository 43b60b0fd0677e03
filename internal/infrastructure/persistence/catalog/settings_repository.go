package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// SettingsRepository persists store settings as a JSON-valued
// key/value table.
type SettingsRepository struct {
	db     *sql.DB
	cache  interfaces.ConfigCache
	logger *logging.ChanneledLogger
}

func NewSettingsRepository(db *sql.DB, cache interfaces.ConfigCache, logger *logging.ChanneledLogger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *SettingsRepository) FindAll(storeID string) (map[string]any, error) {
	if settings, found := r.cache.GetSettings(storeID); found {
		return settings, nil
	}

	query := `SELECT key, value FROM settings`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query settings", "error", err.Error())
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]any)
	for rows.Next() {
		var key, valueStr string
		if err := rows.Scan(&key, &valueStr); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		var value any
		if err := json.Unmarshal([]byte(valueStr), &value); err != nil {
			// Legacy plain-string values
			value = valueStr
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetSettings(storeID, settings)
	return settings, nil
}

func (r *SettingsRepository) Set(storeID, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	query := `INSERT INTO settings (key, value, changed) VALUES (?, ?, ?)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value, changed = excluded.changed`

	start := time.Now()
	r.logger.Database().Debug("Executing setting upsert", "key", key)

	_, err = r.db.Exec(query, key, string(valueJSON), time.Now().UTC())
	if err != nil {
		r.logger.Database().Error("Setting upsert failed", "error", err.Error(), "key", key)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	r.logger.Database().Info("Setting upsert completed", "key", key, "duration", time.Since(start))

	r.cache.InvalidateConfigCache(storeID)
	return nil
}

func (r *SettingsRepository) Delete(storeID, key string) error {
	if _, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		r.logger.Database().Error("Setting delete failed", "error", err.Error(), "key", key)
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	r.cache.InvalidateConfigCache(storeID)
	return nil
}
