// Package billing provides the SQL-backed credit repository. Each
// store's database holds only its own ledger, so rows carry no store
// column.
package billing

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// CreditRepository implements credit cost, balance, and ledger
// persistence with cache-first reads for the hot paths.
type CreditRepository struct {
	db     *sql.DB
	cache  interfaces.ConfigCache
	logger *logging.ChanneledLogger
}

func NewCreditRepository(db *sql.DB, cache interfaces.ConfigCache, logger *logging.ChanneledLogger) *CreditRepository {
	return &CreditRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CreditRepository) FindCosts(storeID string) ([]*billing.CreditCost, error) {
	if cached, found := r.cache.GetCreditCosts(storeID); found {
		costs := make([]*billing.CreditCost, 0, len(cached))
		for operation, credits := range cached {
			costs = append(costs, &billing.CreditCost{Operation: operation, Credits: credits})
		}
		return costs, nil
	}

	query := `SELECT operation, credits, description FROM credit_costs ORDER BY operation`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query credit costs", "error", err.Error())
		return nil, fmt.Errorf("failed to query credit costs: %w", err)
	}
	defer rows.Close()

	var costs []*billing.CreditCost
	cached := make(map[string]int)
	for rows.Next() {
		var cost billing.CreditCost
		var description sql.NullString
		if err := rows.Scan(&cost.Operation, &cost.Credits, &description); err != nil {
			return nil, fmt.Errorf("failed to scan credit cost: %w", err)
		}
		cost.Description = description.String
		costs = append(costs, &cost)
		cached[cost.Operation] = cost.Credits
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}

	r.cache.SetCreditCosts(storeID, cached)
	return costs, nil
}

func (r *CreditRepository) FindBalance(storeID string) (*billing.CreditBalance, error) {
	if balance, found := r.cache.GetCreditBalance(storeID); found {
		return balance, nil
	}

	// The ledger carries a running balance, so the latest entry is
	// authoritative. An empty ledger means zero credits.
	var credits int
	var updated time.Time
	err := r.db.QueryRow(`SELECT balance, created FROM credit_ledger ORDER BY created DESC, id DESC LIMIT 1`).
		Scan(&credits, &updated)
	if err == sql.ErrNoRows {
		credits = 0
		updated = time.Now().UTC()
	} else if err != nil {
		r.logger.Database().Error("Failed to load credit balance", "error", err.Error())
		return nil, fmt.Errorf("failed to load credit balance: %w", err)
	}

	balance := &billing.CreditBalance{
		StoreID: storeID,
		Credits: credits,
		Updated: updated,
	}
	r.cache.SetCreditBalance(storeID, balance)
	return balance, nil
}

func (r *CreditRepository) ApplyDelta(storeID, operation string, delta int, note string) (*billing.LedgerEntry, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin credit transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRow(`SELECT balance FROM credit_ledger ORDER BY created DESC, id DESC LIMIT 1`).
		Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load credit balance: %w", err)
	}

	newBalance := current + delta
	if newBalance < 0 {
		return nil, fmt.Errorf("insufficient credits for %s: have %d, need %d", operation, current, -delta)
	}

	entry := &billing.LedgerEntry{
		ID:        security.GenerateULID(),
		StoreID:   storeID,
		Operation: operation,
		Delta:     delta,
		Balance:   newBalance,
		Note:      note,
		Created:   time.Now().UTC(),
	}

	_, err = tx.Exec(`INSERT INTO credit_ledger (id, operation, delta, balance, note, created)
	                  VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Operation, entry.Delta, entry.Balance,
		nullableString(entry.Note), entry.Created)
	if err != nil {
		r.logger.Database().Error("Credit ledger insert failed", "error", err.Error(), "operation", operation)
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit credit transaction: %w", err)
	}

	r.logger.Billing().Info("Credit delta applied",
		"storeId", storeID, "operation", operation, "delta", delta, "balance", newBalance)

	r.cache.InvalidateCreditBalance(storeID)
	return entry, nil
}

func (r *CreditRepository) FindLedger(storeID string, limit int) ([]*billing.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, operation, delta, balance, note, created FROM credit_ledger
	          ORDER BY created DESC, id DESC LIMIT ?`

	start := time.Now()
	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Database().Error("Failed to query credit ledger", "error", err.Error())
		return nil, fmt.Errorf("failed to query credit ledger: %w", err)
	}
	defer rows.Close()

	var entries []*billing.LedgerEntry
	for rows.Next() {
		var entry billing.LedgerEntry
		var note sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Operation, &entry.Delta, &entry.Balance, &note, &entry.Created); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.StoreID = storeID
		entry.Note = note.String
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, storeID)
	}
	return entries, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
