package billing

import (
	"database/sql"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	schema "github.com/DainoStore/dainostore-go/internal/infrastructure/database"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
)

func newLedgerRepository(t *testing.T) *CreditRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.NewTableCreator().CreateSchema(db))

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{DefaultLevel: slog.LevelError})
	require.NoError(t, err)

	cache := manager.NewManager(nil)
	cache.InitializeStore("store-1")

	return NewCreditRepository(db, cache, logger)
}

func TestApplyDeltaTracksRunningBalance(t *testing.T) {
	repo := newLedgerRepository(t)

	grant, err := repo.ApplyDelta("store-1", "grant", 100, "initial grant")
	require.NoError(t, err)
	assert.Equal(t, 100, grant.Balance)

	spend, err := repo.ApplyDelta("store-1", "quick_translate", -30, "")
	require.NoError(t, err)
	assert.Equal(t, 70, spend.Balance)

	balance, err := repo.FindBalance("store-1")
	require.NoError(t, err)
	assert.Equal(t, 70, balance.Credits)
}

func TestApplyDeltaRejectsOverdraft(t *testing.T) {
	repo := newLedgerRepository(t)

	_, err := repo.ApplyDelta("store-1", "grant", 10, "")
	require.NoError(t, err)

	_, err = repo.ApplyDelta("store-1", "quick_translate", -25, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient credits")

	entries, err := repo.FindLedger("store-1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	balance, err := repo.FindBalance("store-1")
	require.NoError(t, err)
	assert.Equal(t, 10, balance.Credits)
}

func TestApplyDeltaRejectsSpendOnEmptyLedger(t *testing.T) {
	repo := newLedgerRepository(t)

	_, err := repo.ApplyDelta("store-1", "quick_translate", -1, "")
	require.Error(t, err)

	balance, err := repo.FindBalance("store-1")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Credits)
}
