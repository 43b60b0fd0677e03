// Package analytics provides the SQL-backed custom event repository.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// EventRepository persists custom storefront events. Events are
// append-mostly and aggregated through in-memory hourly bins, so the
// repository has no entity cache.
type EventRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewEventRepository(db *sql.DB, logger *logging.ChanneledLogger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EventRepository) Store(storeID string, event *analytics.CustomEvent) error {
	var payloadJSON any
	if len(event.Payload) > 0 {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
		payloadJSON = string(data)
	}

	query := `INSERT INTO events (id, name, session_id, payload, created)
	          VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, event.ID, event.Name,
		nullableString(event.SessionID), payloadJSON, event.Created)
	if err != nil {
		r.logger.Database().Error("Event insert failed", "error", err.Error(), "name", event.Name)
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) CountByName(storeID string, eventQuery analytics.EventQuery) ([]*analytics.EventCount, error) {
	query := `SELECT name, COUNT(*) FROM events WHERE created >= ? AND created < ?`
	args := []any{eventQuery.Since, eventQuery.Until}

	if len(eventQuery.Names) > 0 {
		placeholders := strings.Repeat("?,", len(eventQuery.Names))
		query += fmt.Sprintf(` AND name IN (%s)`, placeholders[:len(placeholders)-1])
		for _, name := range eventQuery.Names {
			args = append(args, name)
		}
	}
	query += ` GROUP BY name ORDER BY COUNT(*) DESC`

	start := time.Now()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to count events", "error", err.Error())
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	var counts []*analytics.EventCount
	for rows.Next() {
		var count analytics.EventCount
		if err := rows.Scan(&count.Name, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts = append(counts, &count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return counts, nil
}

func (r *EventRepository) FindRecent(storeID string, limit int) ([]*analytics.CustomEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, name, session_id, payload, created FROM events
	          ORDER BY created DESC LIMIT ?`

	start := time.Now()
	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Database().Error("Failed to query recent events", "error", err.Error())
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	var events []*analytics.CustomEvent
	for rows.Next() {
		var event analytics.CustomEvent
		var sessionID, payloadJSON sql.NullString
		if err := rows.Scan(&event.ID, &event.Name, &sessionID, &payloadJSON, &event.Created); err != nil {
			r.logger.Database().Error("Failed to scan event", "error", err.Error())
			continue
		}
		event.SessionID = sessionID.String
		if payloadJSON.Valid && payloadJSON.String != "" {
			if err := json.Unmarshal([]byte(payloadJSON.String), &event.Payload); err != nil {
				r.logger.Database().Debug("Skipping malformed event payload", "eventId", event.ID)
			}
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return events, nil
}

func (r *EventRepository) PurgeOlderThan(storeID string, cutoff time.Time) (int, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE created < ?`, cutoff)
	if err != nil {
		r.logger.Database().Error("Event purge failed", "error", err.Error())
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		r.logger.Database().Info("Purged old events", "storeId", storeID, "count", affected)
	}
	return int(affected), nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
