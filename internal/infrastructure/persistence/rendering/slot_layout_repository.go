// Package rendering provides the SQL-backed slot layout repository.
package rendering

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

const layoutColumns = `id, page_type, name, published, slots, created, changed`

// SlotLayoutRepository implements layout persistence with cache-first reads.
type SlotLayoutRepository struct {
	db     *sql.DB
	cache  interfaces.LayoutCache
	logger *logging.ChanneledLogger
}

func NewSlotLayoutRepository(db *sql.DB, cache interfaces.LayoutCache, logger *logging.ChanneledLogger) *SlotLayoutRepository {
	return &SlotLayoutRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *SlotLayoutRepository) FindByID(storeID, id string) (*rendering.SlotLayout, error) {
	if layout, found := r.cache.GetLayout(storeID, id); found {
		return layout, nil
	}

	layout, err := r.loadFromDB(storeID, `WHERE id = ?`, id)
	if err != nil || layout == nil {
		return layout, err
	}

	r.cache.SetLayout(storeID, layout)
	return layout, nil
}

func (r *SlotLayoutRepository) FindPublished(storeID, pageType string) (*rendering.SlotLayout, error) {
	if layoutID, found := r.cache.GetPublishedLayoutID(storeID, pageType); found {
		return r.FindByID(storeID, layoutID)
	}

	layout, err := r.loadFromDB(storeID, `WHERE page_type = ? AND published = 1`, pageType)
	if err != nil || layout == nil {
		return layout, err
	}

	r.cache.SetLayout(storeID, layout)
	r.cache.SetPublishedLayoutID(storeID, pageType, layout.ID)
	return layout, nil
}

func (r *SlotLayoutRepository) FindAll(storeID string) ([]*rendering.SlotLayout, error) {
	if ids, found := r.cache.GetAllLayoutIDs(storeID); found {
		layouts := make([]*rendering.SlotLayout, 0, len(ids))
		for _, id := range ids {
			layout, err := r.FindByID(storeID, id)
			if err != nil {
				return nil, err
			}
			if layout != nil {
				layouts = append(layouts, layout)
			}
		}
		return layouts, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM slot_layouts ORDER BY page_type, name`, layoutColumns)

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query slot layouts", "error", err.Error())
		return nil, fmt.Errorf("failed to query slot layouts: %w", err)
	}
	defer rows.Close()

	var layouts []*rendering.SlotLayout
	var ids []string
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			r.logger.Database().Error("Failed to scan slot layout", "error", err.Error())
			continue
		}
		layouts = append(layouts, layout)
		ids = append(ids, layout.ID)
		r.cache.SetLayout(storeID, layout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetAllLayoutIDs(storeID, ids)
	return layouts, nil
}

func (r *SlotLayoutRepository) Store(storeID string, layout *rendering.SlotLayout) error {
	slotsJSON, err := encodeSlots(layout.Slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots for layout %s: %w", layout.ID, err)
	}

	query := `INSERT INTO slot_layouts (id, page_type, name, published, slots, created)
	          VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing slot layout insert", "layoutId", layout.ID)

	_, err = r.db.Exec(query, layout.ID, layout.PageType, layout.Name,
		boolToInt(layout.Published), slotsJSON, layout.Created)
	if err != nil {
		r.logger.Database().Error("Slot layout insert failed", "error", err.Error(), "layoutId", layout.ID)
		return fmt.Errorf("failed to insert slot layout: %w", err)
	}

	r.logger.Database().Info("Slot layout insert completed", "layoutId", layout.ID, "duration", time.Since(start))

	r.cache.InvalidateLayoutCache(storeID)
	r.cache.SetLayout(storeID, layout)
	return nil
}

func (r *SlotLayoutRepository) Update(storeID string, layout *rendering.SlotLayout) error {
	slotsJSON, err := encodeSlots(layout.Slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots for layout %s: %w", layout.ID, err)
	}

	now := time.Now().UTC()
	layout.Changed = &now

	query := `UPDATE slot_layouts SET page_type = ?, name = ?, published = ?, slots = ?, changed = ?
	          WHERE id = ?`

	start := time.Now()
	result, err := r.db.Exec(query, layout.PageType, layout.Name,
		boolToInt(layout.Published), slotsJSON, layout.Changed, layout.ID)
	if err != nil {
		r.logger.Database().Error("Slot layout update failed", "error", err.Error(), "layoutId", layout.ID)
		return fmt.Errorf("failed to update slot layout: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("slot layout not found: %s", layout.ID)
	}

	r.logger.Database().Info("Slot layout update completed", "layoutId", layout.ID, "duration", time.Since(start))

	// Published flips move the page-type pointer, so drop the whole
	// layout cache instead of just this entry.
	r.cache.InvalidateLayoutCache(storeID)
	r.cache.SetLayout(storeID, layout)
	if layout.Published {
		r.cache.SetPublishedLayoutID(storeID, layout.PageType, layout.ID)
	}
	return nil
}

func (r *SlotLayoutRepository) Delete(storeID, id string) error {
	result, err := r.db.Exec(`DELETE FROM slot_layouts WHERE id = ?`, id)
	if err != nil {
		r.logger.Database().Error("Slot layout delete failed", "error", err.Error(), "layoutId", id)
		return fmt.Errorf("failed to delete slot layout: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("slot layout not found: %s", id)
	}

	r.cache.InvalidateLayoutCache(storeID)
	return nil
}

func (r *SlotLayoutRepository) loadFromDB(storeID, where string, arg any) (*rendering.SlotLayout, error) {
	query := fmt.Sprintf(`SELECT %s FROM slot_layouts %s`, layoutColumns, where)

	start := time.Now()
	row := r.db.QueryRow(query, arg)

	layout, err := scanLayout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to load slot layout", "error", err.Error())
		return nil, fmt.Errorf("failed to load slot layout: %w", err)
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return layout, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(scanner rowScanner) (*rendering.SlotLayout, error) {
	var layout rendering.SlotLayout
	var published int
	var slotsJSON string
	var changed sql.NullTime

	err := scanner.Scan(&layout.ID, &layout.PageType, &layout.Name,
		&published, &slotsJSON, &layout.Created, &changed)
	if err != nil {
		return nil, err
	}

	layout.Published = published != 0
	if changed.Valid {
		layout.Changed = &changed.Time
	}

	slots, err := rendering.ParseSlots([]byte(slotsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse slots for layout %s: %w", layout.ID, err)
	}
	layout.Slots = slots
	return &layout, nil
}

// encodeSlots serializes the slot map as an array ordered by authored
// sequence, the shape ParseSlots expects back.
func encodeSlots(slots map[string]*rendering.Slot) (string, error) {
	ordered := make([]*rendering.Slot, 0, len(slots))
	for _, slot := range slots {
		ordered = append(ordered, slot)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	data, err := json.Marshal(ordered)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
