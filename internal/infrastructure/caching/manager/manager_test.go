package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

func newTestManager(t *testing.T, storeID string) *Manager {
	t.Helper()
	m := NewManager(nil)
	m.InitializeStore(storeID)
	return m
}

func TestInitializeStoreCreatesAllCaches(t *testing.T) {
	m := newTestManager(t, "store-1")

	_, catalogOk := m.GetStoreCatalogCache("store-1")
	_, layoutOk := m.GetStoreLayoutCache("store-1")
	_, fragmentOk := m.GetStoreFragmentCache("store-1")
	_, sessionOk := m.GetStoreSessionCache("store-1")
	_, analyticsOk := m.GetStoreAnalyticsCache("store-1")
	_, configOk := m.GetStoreConfigCache("store-1")

	assert.True(t, catalogOk)
	assert.True(t, layoutOk)
	assert.True(t, fragmentOk)
	assert.True(t, sessionOk)
	assert.True(t, analyticsOk)
	assert.True(t, configOk)

	_, touched := m.GetLastAccessed("store-1")
	assert.True(t, touched)
}

func TestStoresAreIsolated(t *testing.T) {
	m := newTestManager(t, "store-a")
	m.InitializeStore("store-b")

	m.SetProduct("store-a", &catalog.Product{ID: "p-1", Slug: "widget"})

	_, found := m.GetProduct("store-b", "p-1")
	assert.False(t, found)

	product, found := m.GetProduct("store-a", "p-1")
	require.True(t, found)
	assert.Equal(t, "widget", product.Slug)
}

func TestProductSlugIndex(t *testing.T) {
	m := newTestManager(t, "store-1")

	m.SetProduct("store-1", &catalog.Product{ID: "p-1", Slug: "blue-mug"})

	id, found := m.GetProductIDBySlug("store-1", "blue-mug")
	require.True(t, found)
	assert.Equal(t, "p-1", id)

	m.InvalidateProduct("store-1", "p-1")

	_, found = m.GetProduct("store-1", "p-1")
	assert.False(t, found)
	_, found = m.GetProductIDBySlug("store-1", "blue-mug")
	assert.False(t, found)
}

func TestAllProductIDsEmptyIsMiss(t *testing.T) {
	m := newTestManager(t, "store-1")

	_, found := m.GetAllProductIDs("store-1")
	assert.False(t, found)

	m.SetAllProductIDs("store-1", []string{"p-1", "p-2"})
	ids, found := m.GetAllProductIDs("store-1")
	require.True(t, found)
	assert.Equal(t, []string{"p-1", "p-2"}, ids)
}

func TestInvalidateProductClearsDependentFragments(t *testing.T) {
	m := newTestManager(t, "store-1")

	variant := types.FragmentVariant{PageType: "product", ViewMode: "grid", Language: "en"}
	m.SetFragment("store-1", "l-1", variant, "<html>", []string{"product:p-1", "layout:l-1"})

	_, found := m.GetFragment("store-1", "l-1", variant)
	require.True(t, found)

	m.InvalidateProduct("store-1", "p-1")

	_, found = m.GetFragment("store-1", "l-1", variant)
	assert.False(t, found)
}

func TestInvalidateLayoutClearsDependentFragments(t *testing.T) {
	m := newTestManager(t, "store-1")

	m.SetLayout("store-1", &rendering.SlotLayout{ID: "l-1", PageType: "category"})
	variant := types.FragmentVariant{PageType: "category", ViewMode: "list", Language: "en"}
	m.SetFragment("store-1", "l-1", variant, "<html>", []string{"layout:l-1"})

	m.InvalidateLayout("store-1", "l-1")

	_, found := m.GetLayout("store-1", "l-1")
	assert.False(t, found)
	_, found = m.GetFragment("store-1", "l-1", variant)
	assert.False(t, found)
}

func TestInvalidateLayoutCacheClearsAllFragments(t *testing.T) {
	m := newTestManager(t, "store-1")

	variantA := types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}
	variantB := types.FragmentVariant{PageType: "product", ViewMode: "grid", Language: "fr"}
	m.SetFragment("store-1", "l-1", variantA, "<a>", nil)
	m.SetFragment("store-1", "l-2", variantB, "<b>", nil)

	m.InvalidateLayoutCache("store-1")

	assert.Empty(t, m.GetAllFragmentKeys("store-1"))
}

func TestPublishedLayoutLookup(t *testing.T) {
	m := newTestManager(t, "store-1")

	_, found := m.GetPublishedLayoutID("store-1", "product")
	assert.False(t, found)

	m.SetPublishedLayoutID("store-1", "product", "l-9")
	id, found := m.GetPublishedLayoutID("store-1", "product")
	require.True(t, found)
	assert.Equal(t, "l-9", id)

	// Invalidating the published layout clears the page type mapping
	m.SetLayout("store-1", &rendering.SlotLayout{ID: "l-9", PageType: "product"})
	m.InvalidateLayout("store-1", "l-9")
	_, found = m.GetPublishedLayoutID("store-1", "product")
	assert.False(t, found)
}

func TestRangeCacheStatusProceed(t *testing.T) {
	m := newTestManager(t, "store-1")
	now := time.Now()

	currentKey := types.CurrentHourKey(now)
	previousKey := types.FormatHourKey(now.Add(-time.Hour))

	m.SetHourlyEventBin("store-1", currentKey, &types.HourlyEventBin{
		Data:       &types.HourlyEventData{PageViews: 3},
		ComputedAt: now,
	})
	m.SetHourlyEventBin("store-1", previousKey, &types.HourlyEventBin{
		Data:       &types.HourlyEventData{PageViews: 7},
		ComputedAt: now,
	})

	status := m.GetRangeCacheStatus("store-1", []string{currentKey, previousKey})
	assert.Equal(t, "proceed", status.Action)
	assert.Empty(t, status.MissingHours)
	assert.True(t, status.HistoricalComplete)
}

func TestRangeCacheStatusRefreshCurrent(t *testing.T) {
	m := newTestManager(t, "store-1")
	now := time.Now()

	currentKey := types.CurrentHourKey(now)
	previousKey := types.FormatHourKey(now.Add(-time.Hour))

	m.SetHourlyEventBin("store-1", currentKey, &types.HourlyEventBin{
		Data:       &types.HourlyEventData{},
		ComputedAt: now.Add(-config.CurrentHourTTL - time.Minute),
	})
	m.SetHourlyEventBin("store-1", previousKey, &types.HourlyEventBin{
		Data:       &types.HourlyEventData{},
		ComputedAt: now,
	})

	status := m.GetRangeCacheStatus("store-1", []string{currentKey, previousKey})
	assert.Equal(t, "refresh_current", status.Action)
	assert.True(t, status.CurrentHourExpired)
	assert.True(t, status.HistoricalComplete)
	assert.Equal(t, []string{currentKey}, status.MissingHours)
}

func TestRangeCacheStatusLoadRange(t *testing.T) {
	m := newTestManager(t, "store-1")
	now := time.Now()

	currentKey := types.CurrentHourKey(now)
	missingKey := types.FormatHourKey(now.Add(-3 * time.Hour))

	m.SetHourlyEventBin("store-1", currentKey, &types.HourlyEventBin{
		Data:       &types.HourlyEventData{},
		ComputedAt: now,
	})

	status := m.GetRangeCacheStatus("store-1", []string{currentKey, missingKey})
	assert.Equal(t, "load_range", status.Action)
	assert.False(t, status.HistoricalComplete)
	assert.Contains(t, status.MissingHours, missingKey)
}

func TestGetStoreStats(t *testing.T) {
	m := newTestManager(t, "store-1")

	m.SetProduct("store-1", &catalog.Product{ID: "p-1", Slug: "a"})
	m.SetProduct("store-1", &catalog.Product{ID: "p-2", Slug: "b"})
	m.SetFragment("store-1", "l-1", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}, "<a>", nil)
	m.SetSession("store-1", &types.SessionData{SessionID: "s-1", VisitorID: "v-1"})

	stats := m.GetStoreStats("store-1")
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 1, stats.Fragments)
	assert.Equal(t, 1, stats.Sessions)
}

func TestInvalidateStoreClearsEverything(t *testing.T) {
	m := newTestManager(t, "store-1")

	m.SetProduct("store-1", &catalog.Product{ID: "p-1", Slug: "a"})
	m.SetLayout("store-1", &rendering.SlotLayout{ID: "l-1"})
	m.SetFragment("store-1", "l-1", types.FragmentVariant{PageType: "home", ViewMode: "grid", Language: "en"}, "<a>", nil)
	m.SetSession("store-1", &types.SessionData{SessionID: "s-1", VisitorID: "v-1"})
	m.SetSettings("store-1", map[string]any{"storeName": "Test"})

	m.InvalidateStore("store-1")

	_, found := m.GetProduct("store-1", "p-1")
	assert.False(t, found)
	_, found = m.GetLayout("store-1", "l-1")
	assert.False(t, found)
	assert.Empty(t, m.GetAllFragmentKeys("store-1"))
	_, found = m.GetSession("store-1", "s-1")
	assert.False(t, found)
	_, found = m.GetSettings("store-1")
	assert.False(t, found)
}

func TestGetAllStoreIDs(t *testing.T) {
	m := newTestManager(t, "store-a")
	m.InitializeStore("store-b")

	ids := m.GetAllStoreIDs()
	assert.ElementsMatch(t, []string{"store-a", "store-b"}, ids)
}

func TestHealthReport(t *testing.T) {
	m := newTestManager(t, "store-1")

	health := m.Health()
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, 1, health["stores"])
}
