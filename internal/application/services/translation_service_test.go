package services

import (
	"database/sql"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	schema "github.com/DainoStore/dainostore-go/internal/infrastructure/database"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

func TestCloneStringMapIsIndependent(t *testing.T) {
	original := map[string]string{"en": "Lamp", "de": "Lampe"}
	clone := cloneStringMap(original)

	clone["fr"] = "Lampe de bureau"
	clone["en"] = "Desk Lamp"

	assert.Equal(t, "Lamp", original["en"])
	assert.NotContains(t, original, "fr")
	assert.Equal(t, "Desk Lamp", clone["en"])
}

func TestCloneStringMapNilInput(t *testing.T) {
	clone := cloneStringMap(nil)
	assert.NotNil(t, clone)
	clone["x"] = "y"
	assert.Equal(t, "y", clone["x"])
}

func newTranslationStoreContext(t *testing.T) *tenant.Context {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	creator := schema.NewTableCreator()
	require.NoError(t, creator.CreateSchema(db))
	require.NoError(t, creator.SeedInitialContent(db))

	_, err = db.Exec(`INSERT INTO languages (id, code, name, is_default, is_active) VALUES ('lang-fr', 'fr', 'French', 0, 1)`)
	require.NoError(t, err)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{DefaultLevel: slog.LevelError})
	require.NoError(t, err)

	cache := manager.NewManager(nil)
	cache.InitializeStore("store-1")

	return &tenant.Context{
		StoreID:      "store-1",
		Database:     &tenant.Database{Conn: db},
		Status:       "active",
		CacheManager: cache,
		Logger:       logger,
	}
}

func upsertUILabel(t *testing.T, storeCtx *tenant.Context, language, key, value string) {
	t.Helper()
	err := storeCtx.TranslationRepo().Upsert(storeCtx.StoreID, &i18n.Translation{
		ID:         security.GenerateULID(),
		Language:   language,
		EntityType: "ui",
		Key:        key,
		Value:      value,
	})
	require.NoError(t, err)
}

func TestQuickTranslateFillsOnlyMissingKeys(t *testing.T) {
	storeCtx := newTranslationStoreContext(t)
	credits := NewCreditService()
	svc := NewTranslationService(credits)

	_, err := storeCtx.CreditRepo().ApplyDelta(storeCtx.StoreID, "grant", 5, "seed")
	require.NoError(t, err)

	upsertUILabel(t, storeCtx, "en", "cart", "Cart")
	upsertUILabel(t, storeCtx, "en", "checkout", "Checkout")
	upsertUILabel(t, storeCtx, "fr", "cart", "Panier")

	filled, err := svc.QuickTranslate(storeCtx, "fr")
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	labels, err := storeCtx.TranslationRepo().FindUILabels(storeCtx.StoreID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Panier", labels["cart"])
	assert.Equal(t, "Checkout", labels["checkout"])

	balance, err := credits.GetBalance(storeCtx)
	require.NoError(t, err)
	assert.Equal(t, 4, balance.Credits)
}

func TestQuickTranslateFailsClosedWithoutCredits(t *testing.T) {
	storeCtx := newTranslationStoreContext(t)
	svc := NewTranslationService(NewCreditService())

	upsertUILabel(t, storeCtx, "en", "cart", "Cart")

	filled, err := svc.QuickTranslate(storeCtx, "fr")
	require.Error(t, err)
	assert.Equal(t, 0, filled)

	labels, err := storeCtx.TranslationRepo().FindUILabels(storeCtx.StoreID, "fr")
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestQuickTranslateRejectsDefaultLanguage(t *testing.T) {
	storeCtx := newTranslationStoreContext(t)
	svc := NewTranslationService(NewCreditService())

	_, err := svc.QuickTranslate(storeCtx, "en")
	require.Error(t, err)

	_, err = svc.QuickTranslate(storeCtx, "")
	require.Error(t, err)
}
