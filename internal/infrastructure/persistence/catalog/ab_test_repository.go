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

type AbTestRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewAbTestRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *AbTestRepository {
	return &AbTestRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *AbTestRepository) FindByID(storeID, id string) (*catalog.AbTest, error) {
	if test, found := r.cache.GetAbTest(storeID, id); found {
		return test, nil
	}

	test, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, nil
	}

	r.cache.SetAbTest(storeID, test)
	return test, nil
}

// FindRunning returns the tests currently serving traffic.
func (r *AbTestRepository) FindRunning(storeID string) ([]*catalog.AbTest, error) {
	if ids, found := r.cache.GetRunningAbTestIDs(storeID); found {
		return r.findByIDs(storeID, ids)
	}

	rows, err := r.db.Query(`SELECT id FROM ab_tests WHERE status = 'running' ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("failed to query running ab tests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ab test ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.SetRunningAbTestIDs(storeID, ids)
	return r.findByIDs(storeID, ids)
}

func (r *AbTestRepository) FindAll(storeID string) ([]*catalog.AbTest, error) {
	rows, err := r.db.Query(`SELECT id FROM ab_tests ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ab tests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ab test ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.findByIDs(storeID, ids)
}

func (r *AbTestRepository) findByIDs(storeID string, ids []string) ([]*catalog.AbTest, error) {
	var result []*catalog.AbTest
	for _, id := range ids {
		test, err := r.FindByID(storeID, id)
		if err != nil {
			return nil, err
		}
		if test != nil {
			result = append(result, test)
		}
	}
	return result, nil
}

func (r *AbTestRepository) Store(storeID string, test *catalog.AbTest) error {
	start := time.Now()
	r.logger.Database().Debug("Executing ab test insert", "id", test.ID, "name", test.Name)

	if test.Created.IsZero() {
		test.Created = time.Now().UTC()
	}
	if test.Status == "" {
		test.Status = "draft"
	}

	_, err := r.db.Exec(`INSERT INTO ab_tests (id, name, status, created) VALUES (?, ?, ?, ?)`,
		test.ID, test.Name, test.Status, test.Created)
	if err != nil {
		r.logger.Database().Error("Ab test insert failed", "error", err.Error(), "id", test.ID)
		return fmt.Errorf("failed to insert ab test: %w", err)
	}

	for _, variant := range test.Variants {
		_, err := r.db.Exec(`INSERT INTO ab_test_variants (id, test_id, name, weight, impressions, conversions) VALUES (?, ?, ?, ?, ?, ?)`,
			variant.ID, test.ID, variant.Name, variant.Weight, variant.Impressions, variant.Conversions)
		if err != nil {
			return fmt.Errorf("failed to insert ab test variant %s: %w", variant.ID, err)
		}
	}

	r.logger.Database().Info("Ab test insert completed", "id", test.ID, "duration", time.Since(start))

	r.cache.SetAbTest(storeID, test)
	return nil
}

func (r *AbTestRepository) Update(storeID string, test *catalog.AbTest) error {
	start := time.Now()
	r.logger.Database().Debug("Executing ab test update", "id", test.ID)

	_, err := r.db.Exec(`UPDATE ab_tests SET name = ?, status = ? WHERE id = ?`,
		test.Name, test.Status, test.ID)
	if err != nil {
		r.logger.Database().Error("Ab test update failed", "error", err.Error(), "id", test.ID)
		return fmt.Errorf("failed to update ab test: %w", err)
	}

	// Replace the variant set wholesale; counters come with the entity
	if _, err := r.db.Exec(`DELETE FROM ab_test_variants WHERE test_id = ?`, test.ID); err != nil {
		return fmt.Errorf("failed to clear ab test variants: %w", err)
	}
	for _, variant := range test.Variants {
		_, err := r.db.Exec(`INSERT INTO ab_test_variants (id, test_id, name, weight, impressions, conversions) VALUES (?, ?, ?, ?, ?, ?)`,
			variant.ID, test.ID, variant.Name, variant.Weight, variant.Impressions, variant.Conversions)
		if err != nil {
			return fmt.Errorf("failed to insert ab test variant %s: %w", variant.ID, err)
		}
	}

	r.logger.Database().Info("Ab test update completed", "id", test.ID, "duration", time.Since(start))

	r.cache.InvalidateAbTest(storeID, test.ID)
	r.cache.SetAbTest(storeID, test)
	return nil
}

// RecordImpression bumps a variant's impression counter.
func (r *AbTestRepository) RecordImpression(storeID, testID, variantID string) error {
	_, err := r.db.Exec(`UPDATE ab_test_variants SET impressions = impressions + 1 WHERE id = ? AND test_id = ?`,
		variantID, testID)
	if err != nil {
		return fmt.Errorf("failed to record impression: %w", err)
	}

	r.cache.InvalidateAbTest(storeID, testID)
	return nil
}

// RecordConversion bumps a variant's conversion counter.
func (r *AbTestRepository) RecordConversion(storeID, testID, variantID string) error {
	_, err := r.db.Exec(`UPDATE ab_test_variants SET conversions = conversions + 1 WHERE id = ? AND test_id = ?`,
		variantID, testID)
	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	r.cache.InvalidateAbTest(storeID, testID)
	return nil
}

func (r *AbTestRepository) Delete(storeID, id string) error {
	if _, err := r.db.Exec(`DELETE FROM ab_test_variants WHERE test_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete ab test variants: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM ab_tests WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Ab test delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete ab test: %w", err)
	}

	r.cache.InvalidateAbTest(storeID, id)
	return nil
}

func (r *AbTestRepository) loadFromDB(id string) (*catalog.AbTest, error) {
	row := r.db.QueryRow(`SELECT id, name, status, created FROM ab_tests WHERE id = ?`, id)

	var test catalog.AbTest
	err := row.Scan(&test.ID, &test.Name, &test.Status, &test.Created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ab test: %w", err)
	}

	rows, err := r.db.Query(`SELECT id, name, weight, impressions, conversions FROM ab_test_variants WHERE test_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ab test variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variant catalog.AbTestVariant
		if err := rows.Scan(&variant.ID, &variant.Name, &variant.Weight, &variant.Impressions, &variant.Conversions); err != nil {
			return nil, fmt.Errorf("failed to scan ab test variant: %w", err)
		}
		test.Variants = append(test.Variants, &variant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &test, nil
}
