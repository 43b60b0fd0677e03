// Package catalog provides the SQL-backed catalog repositories
package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

type CouponRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewCouponRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *CouponRepository {
	return &CouponRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CouponRepository) FindByID(storeID, id string) (*catalog.Coupon, error) {
	if coupon, found := r.cache.GetCoupon(storeID, id); found {
		return coupon, nil
	}

	coupon, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, nil
	}

	r.cache.SetCoupon(storeID, coupon)
	return coupon, nil
}

// FindByCode resolves a coupon by its redemption code. Codes are
// matched case-insensitively.
func (r *CouponRepository) FindByCode(storeID, code string) (*catalog.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if id, found := r.cache.GetCouponIDByCode(storeID, normalized); found {
		return r.FindByID(storeID, id)
	}

	var id string
	err := r.db.QueryRow(`SELECT id FROM coupons WHERE UPPER(code) = ?`, normalized).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve coupon code: %w", err)
	}

	return r.FindByID(storeID, id)
}

func (r *CouponRepository) FindAll(storeID string) ([]*catalog.Coupon, error) {
	if ids, found := r.cache.GetAllCouponIDs(storeID); found {
		return r.findByIDs(storeID, ids)
	}

	query := `SELECT id FROM coupons ORDER BY created DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan coupon ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Coupon{}, nil
	}

	r.cache.SetAllCouponIDs(storeID, ids)
	return r.findByIDs(storeID, ids)
}

func (r *CouponRepository) findByIDs(storeID string, ids []string) ([]*catalog.Coupon, error) {
	var result []*catalog.Coupon
	for _, id := range ids {
		coupon, err := r.FindByID(storeID, id)
		if err != nil {
			return nil, err
		}
		if coupon != nil {
			result = append(result, coupon)
		}
	}
	return result, nil
}

func (r *CouponRepository) Store(storeID string, coupon *catalog.Coupon) error {
	query := `INSERT INTO coupons (id, code, type, value, usage_limit, used_count, starts_at, ends_at, is_active, created)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing coupon insert", "id", coupon.ID, "code", coupon.Code)

	if coupon.Created.IsZero() {
		coupon.Created = time.Now().UTC()
	}

	_, err := r.db.Exec(query, coupon.ID, coupon.Code, coupon.Type, coupon.Value.String(),
		coupon.UsageLimit, coupon.UsedCount, nullableTime(coupon.StartsAt), nullableTime(coupon.EndsAt),
		coupon.IsActive, coupon.Created)
	if err != nil {
		r.logger.Database().Error("Coupon insert failed", "error", err.Error(), "id", coupon.ID)
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	r.logger.Database().Info("Coupon insert completed", "id", coupon.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetCoupon(storeID, coupon)
	return nil
}

func (r *CouponRepository) Update(storeID string, coupon *catalog.Coupon) error {
	query := `UPDATE coupons SET code = ?, type = ?, value = ?, usage_limit = ?, used_count = ?, starts_at = ?, ends_at = ?, is_active = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing coupon update", "id", coupon.ID)

	_, err := r.db.Exec(query, coupon.Code, coupon.Type, coupon.Value.String(),
		coupon.UsageLimit, coupon.UsedCount, nullableTime(coupon.StartsAt), nullableTime(coupon.EndsAt),
		coupon.IsActive, coupon.ID)
	if err != nil {
		r.logger.Database().Error("Coupon update failed", "error", err.Error(), "id", coupon.ID)
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	r.logger.Database().Info("Coupon update completed", "id", coupon.ID, "duration", time.Since(start))

	r.cache.InvalidateCoupon(storeID, coupon.ID)
	r.cache.SetCoupon(storeID, coupon)
	return nil
}

// IncrementUsage atomically bumps a coupon's redemption count.
func (r *CouponRepository) IncrementUsage(storeID, id string) error {
	query := `UPDATE coupons SET used_count = used_count + 1 WHERE id = ?`

	result, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Coupon usage increment failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("coupon %s not found", id)
	}

	// Drop the stale cached copy so the next read reflects the new count
	r.cache.InvalidateCoupon(storeID, id)
	return nil
}

func (r *CouponRepository) Delete(storeID, id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing coupon delete", "id", id)

	if _, err := r.db.Exec(`DELETE FROM coupons WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Coupon delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	r.logger.Database().Info("Coupon delete completed", "id", id, "duration", time.Since(start))

	r.cache.InvalidateCoupon(storeID, id)
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func (r *CouponRepository) loadFromDB(id string) (*catalog.Coupon, error) {
	query := `SELECT id, code, type, value, usage_limit, used_count, starts_at, ends_at, is_active, created FROM coupons WHERE id = ?`

	row := r.db.QueryRow(query, id)

	var coupon catalog.Coupon
	var valueStr string
	var startsAt, endsAt sql.NullTime

	err := row.Scan(&coupon.ID, &coupon.Code, &coupon.Type, &valueStr,
		&coupon.UsageLimit, &coupon.UsedCount, &startsAt, &endsAt,
		&coupon.IsActive, &coupon.Created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan coupon: %w", err)
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("invalid coupon value %q: %w", valueStr, err)
	}
	coupon.Value = value

	if startsAt.Valid {
		coupon.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		coupon.EndsAt = &endsAt.Time
	}

	return &coupon, nil
}
