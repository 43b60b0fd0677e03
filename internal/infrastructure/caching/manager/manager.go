// Package manager provides centralized cache operations with proper store isolation
package manager

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/stores"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Interface assertion to ensure Manager implements the full cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager provides centralized cache operations with proper store isolation by delegating to specialized stores.
type Manager struct {
	Mu             sync.RWMutex
	LastAccessed   map[string]time.Time
	catalogStore   *stores.CatalogStore
	layoutsStore   *stores.LayoutsStore
	fragmentsStore *stores.FragmentsStore
	sessionsStore  *stores.SessionsStore
	analyticsStore *stores.AnalyticsStore
	configStore    *stores.ConfigStore
	logger         *logging.ChanneledLogger
}

func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"catalog", "layouts", "fragments", "sessions", "analytics", "config"})
	}

	return &Manager{
		LastAccessed:   make(map[string]time.Time),
		catalogStore:   stores.NewCatalogStore(),
		layoutsStore:   stores.NewLayoutsStore(),
		fragmentsStore: stores.NewFragmentsStore(),
		sessionsStore:  stores.NewSessionsStore(),
		analyticsStore: stores.NewAnalyticsStore(),
		configStore:    stores.NewConfigStore(),
		logger:         logger,
	}
}

func (m *Manager) touchStore(storeID string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.LastAccessed[storeID] = time.Now().UTC()
}

// GetLastAccessed reports when a store's caches were last touched,
// used by the cleanup worker to evict idle stores.
func (m *Manager) GetLastAccessed(storeID string) (time.Time, bool) {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	t, exists := m.LastAccessed[storeID]
	return t, exists
}

func (m *Manager) InitializeStore(storeID string) {
	start := time.Now()
	if m.logger != nil {
		m.logger.Cache().Debug("Initializing store cache", "storeId", storeID)
	}

	m.catalogStore.InitializeStore(storeID)
	m.layoutsStore.InitializeStore(storeID)
	m.fragmentsStore.InitializeStore(storeID)
	m.sessionsStore.InitializeStore(storeID)
	m.analyticsStore.InitializeStore(storeID)
	m.configStore.InitializeStore(storeID)
	m.touchStore(storeID)

	if m.logger != nil {
		m.logger.Cache().Info("Store cache initialized", "storeId", storeID, "duration", time.Since(start))
	}
}

// GetStoreCatalogCache exposes the raw per-store catalog cache for
// warming and cleanup paths that operate on whole maps.
func (m *Manager) GetStoreCatalogCache(storeID string) (*types.StoreCatalogCache, bool) {
	return m.catalogStore.GetStoreCache(storeID)
}

func (m *Manager) GetStoreLayoutCache(storeID string) (*types.StoreLayoutCache, bool) {
	return m.layoutsStore.GetStoreCache(storeID)
}

func (m *Manager) GetStoreFragmentCache(storeID string) (*types.StoreFragmentCache, bool) {
	return m.fragmentsStore.GetStoreCache(storeID)
}

func (m *Manager) GetStoreSessionCache(storeID string) (*types.StoreSessionCache, bool) {
	return m.sessionsStore.GetStoreCache(storeID)
}

func (m *Manager) GetStoreAnalyticsCache(storeID string) (*types.StoreAnalyticsCache, bool) {
	return m.analyticsStore.GetStoreCache(storeID)
}

func (m *Manager) GetStoreConfigCache(storeID string) (*types.StoreConfigCache, bool) {
	return m.configStore.GetStoreCache(storeID)
}

// =============================================================================
// Catalog Operations
// =============================================================================

func (m *Manager) GetProduct(storeID, id string) (*catalog.Product, bool) {
	return m.catalogStore.GetProduct(storeID, id)
}

func (m *Manager) SetProduct(storeID string, product *catalog.Product) {
	m.catalogStore.SetProduct(storeID, product)
	m.touchStore(storeID)
}

func (m *Manager) GetAllProductIDs(storeID string) ([]string, bool) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.AllProductIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.AllProductIDs))
	copy(ids, cache.AllProductIDs)
	return ids, true
}

func (m *Manager) SetAllProductIDs(storeID string, ids []string) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllProductIDs = ids
}

func (m *Manager) GetProductIDBySlug(storeID, slug string) (string, bool) {
	return m.catalogStore.GetProductIDBySlug(storeID, slug)
}

func (m *Manager) GetProductIDsByCategory(storeID, categoryID string) ([]string, bool) {
	return m.catalogStore.GetProductIDsByCategory(storeID, categoryID)
}

func (m *Manager) SetProductIDsByCategory(storeID, categoryID string, ids []string) {
	m.catalogStore.SetProductIDsByCategory(storeID, categoryID, ids)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateProduct(storeID, id string) {
	m.catalogStore.InvalidateProduct(storeID, id)
	m.fragmentsStore.InvalidateByDependency(storeID, "product:"+id)
	m.touchStore(storeID)
}

func (m *Manager) AddProductID(storeID, id string) {
	m.catalogStore.AddProductID(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) RemoveProductID(storeID, id string) {
	m.catalogStore.RemoveProductID(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) GetCategory(storeID, id string) (*catalog.Category, bool) {
	return m.catalogStore.GetCategory(storeID, id)
}

func (m *Manager) SetCategory(storeID string, category *catalog.Category) {
	m.catalogStore.SetCategory(storeID, category)
	m.touchStore(storeID)
}

func (m *Manager) GetAllCategoryIDs(storeID string) ([]string, bool) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.AllCategoryIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.AllCategoryIDs))
	copy(ids, cache.AllCategoryIDs)
	return ids, true
}

func (m *Manager) SetAllCategoryIDs(storeID string, ids []string) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllCategoryIDs = ids
}

func (m *Manager) GetCategoryIDBySlug(storeID, slug string) (string, bool) {
	return m.catalogStore.GetCategoryIDBySlug(storeID, slug)
}

func (m *Manager) InvalidateCategory(storeID, id string) {
	m.catalogStore.InvalidateCategory(storeID, id)
	m.fragmentsStore.InvalidateByDependency(storeID, "category:"+id)
	m.touchStore(storeID)
}

func (m *Manager) AddCategoryID(storeID, id string) {
	m.catalogStore.AddCategoryID(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) RemoveCategoryID(storeID, id string) {
	m.catalogStore.RemoveCategoryID(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) GetAttribute(storeID, id string) (*catalog.Attribute, bool) {
	return m.catalogStore.GetAttribute(storeID, id)
}

func (m *Manager) SetAttribute(storeID string, attribute *catalog.Attribute) {
	m.catalogStore.SetAttribute(storeID, attribute)
	m.touchStore(storeID)
}

func (m *Manager) GetAllAttributeIDs(storeID string) ([]string, bool) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.AllAttributeIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.AllAttributeIDs))
	copy(ids, cache.AllAttributeIDs)
	return ids, true
}

func (m *Manager) SetAllAttributeIDs(storeID string, ids []string) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllAttributeIDs = ids
}

func (m *Manager) GetAttributeIDByCode(storeID, code string) (string, bool) {
	return m.catalogStore.GetAttributeIDByCode(storeID, code)
}

func (m *Manager) InvalidateAttribute(storeID, id string) {
	m.catalogStore.InvalidateAttribute(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) GetCoupon(storeID, id string) (*catalog.Coupon, bool) {
	return m.catalogStore.GetCoupon(storeID, id)
}

func (m *Manager) SetCoupon(storeID string, coupon *catalog.Coupon) {
	m.catalogStore.SetCoupon(storeID, coupon)
	m.touchStore(storeID)
}

func (m *Manager) GetAllCouponIDs(storeID string) ([]string, bool) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.AllCouponIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.AllCouponIDs))
	copy(ids, cache.AllCouponIDs)
	return ids, true
}

func (m *Manager) SetAllCouponIDs(storeID string, ids []string) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllCouponIDs = ids
}

func (m *Manager) GetCouponIDByCode(storeID, code string) (string, bool) {
	return m.catalogStore.GetCouponIDByCode(storeID, code)
}

func (m *Manager) InvalidateCoupon(storeID, id string) {
	m.catalogStore.InvalidateCoupon(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) GetSeoTemplate(storeID, id string) (*catalog.SeoTemplate, bool) {
	return m.catalogStore.GetSeoTemplate(storeID, id)
}

func (m *Manager) SetSeoTemplate(storeID string, template *catalog.SeoTemplate) {
	m.catalogStore.SetSeoTemplate(storeID, template)
	m.touchStore(storeID)
}

func (m *Manager) GetSeoTemplateIDByEntityType(storeID, entityType string) (string, bool) {
	return m.catalogStore.GetSeoTemplateIDByEntityType(storeID, entityType)
}

func (m *Manager) InvalidateSeoTemplate(storeID, id string) {
	m.catalogStore.InvalidateSeoTemplate(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) GetAbTest(storeID, id string) (*catalog.AbTest, bool) {
	return m.catalogStore.GetAbTest(storeID, id)
}

func (m *Manager) SetAbTest(storeID string, test *catalog.AbTest) {
	m.catalogStore.SetAbTest(storeID, test)
	m.touchStore(storeID)
}

func (m *Manager) GetRunningAbTestIDs(storeID string) ([]string, bool) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.RunningAbTestIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.RunningAbTestIDs))
	copy(ids, cache.RunningAbTestIDs)
	return ids, true
}

func (m *Manager) SetRunningAbTestIDs(storeID string, ids []string) {
	cache, exists := m.catalogStore.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.RunningAbTestIDs = ids
}

func (m *Manager) InvalidateAbTest(storeID, id string) {
	m.catalogStore.InvalidateAbTest(storeID, id)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateCatalogCache(storeID string) {
	m.catalogStore.InvalidateCatalogCache(storeID)
	m.touchStore(storeID)
}

// =============================================================================
// Layout Operations
// =============================================================================

func (m *Manager) GetLayout(storeID, id string) (*rendering.SlotLayout, bool) {
	return m.layoutsStore.GetLayout(storeID, id)
}

func (m *Manager) SetLayout(storeID string, layout *rendering.SlotLayout) {
	m.layoutsStore.SetLayout(storeID, layout)
	m.touchStore(storeID)
}

func (m *Manager) GetAllLayoutIDs(storeID string) ([]string, bool) {
	return m.layoutsStore.GetAllLayoutIDs(storeID)
}

func (m *Manager) SetAllLayoutIDs(storeID string, ids []string) {
	m.layoutsStore.SetAllLayoutIDs(storeID, ids)
}

func (m *Manager) GetPublishedLayoutID(storeID, pageType string) (string, bool) {
	return m.layoutsStore.GetPublishedLayoutID(storeID, pageType)
}

func (m *Manager) SetPublishedLayoutID(storeID, pageType, layoutID string) {
	m.layoutsStore.SetPublishedLayoutID(storeID, pageType, layoutID)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateLayout(storeID, id string) {
	m.layoutsStore.InvalidateLayout(storeID, id)
	m.fragmentsStore.InvalidateByDependency(storeID, "layout:"+id)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateLayoutCache(storeID string) {
	m.layoutsStore.InvalidateLayoutCache(storeID)
	m.fragmentsStore.InvalidateFragmentCache(storeID)
	m.touchStore(storeID)
}

// =============================================================================
// Fragment Operations
// =============================================================================

func (m *Manager) GetFragment(storeID, layoutID string, variant types.FragmentVariant) (*types.Fragment, bool) {
	return m.fragmentsStore.GetFragment(storeID, layoutID, variant)
}

func (m *Manager) SetFragment(storeID, layoutID string, variant types.FragmentVariant, html string, dependsOn []string) {
	m.fragmentsStore.SetFragment(storeID, layoutID, variant, html, dependsOn)
	m.touchStore(storeID)
}

func (m *Manager) GetFragmentDependencies(storeID, entityID string) ([]string, bool) {
	return m.fragmentsStore.GetFragmentDependencies(storeID, entityID)
}

func (m *Manager) InvalidateByDependency(storeID, entityID string) {
	m.fragmentsStore.InvalidateByDependency(storeID, entityID)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateFragment(storeID, layoutID string, variant types.FragmentVariant) {
	m.fragmentsStore.InvalidateByPattern(storeID, m.fragmentsStore.BuildFragmentKey(layoutID, variant))
}

func (m *Manager) InvalidateFragmentCache(storeID string) {
	m.fragmentsStore.InvalidateFragmentCache(storeID)
	m.touchStore(storeID)
}

func (m *Manager) GetAllFragmentKeys(storeID string) []string {
	return m.fragmentsStore.GetAllFragmentKeys(storeID)
}

// =============================================================================
// Session Operations
// =============================================================================

func (m *Manager) GetSession(storeID, sessionID string) (*types.SessionData, bool) {
	return m.sessionsStore.GetSession(storeID, sessionID)
}

func (m *Manager) SetSession(storeID string, sessionData *types.SessionData) {
	m.sessionsStore.SetSession(storeID, sessionData)
	m.touchStore(storeID)
}

func (m *Manager) RemoveSession(storeID, sessionID string) {
	m.sessionsStore.RemoveSession(storeID, sessionID)
}

func (m *Manager) GetSessionsByVisitor(storeID, visitorID string) []string {
	return m.sessionsStore.GetSessionsByVisitor(storeID, visitorID)
}

func (m *Manager) GetVisitorState(storeID, visitorID string) (*types.VisitorState, bool) {
	return m.sessionsStore.GetVisitorState(storeID, visitorID)
}

func (m *Manager) SetVisitorState(storeID string, state *types.VisitorState) {
	m.sessionsStore.SetVisitorState(storeID, state)
}

func (m *Manager) IsKnownVisitor(storeID, visitorID string) bool {
	return m.sessionsStore.IsKnownVisitor(storeID, visitorID)
}

func (m *Manager) SetKnownVisitor(storeID, visitorID string, isKnown bool) {
	m.sessionsStore.SetKnownVisitor(storeID, visitorID, isKnown)
}

func (m *Manager) LoadKnownVisitors(storeID string, visitors map[string]bool) {
	m.sessionsStore.LoadKnownVisitors(storeID, visitors)
}

func (m *Manager) InvalidateSessionCache(storeID string) {
	m.sessionsStore.InvalidateSessionCache(storeID)
}

func (m *Manager) GetAllSessionIDs(storeID string) []string {
	return m.sessionsStore.GetAllSessionIDs(storeID)
}

func (m *Manager) GetAllVisitorIDs(storeID string) []string {
	return m.sessionsStore.GetAllVisitorIDs(storeID)
}

// =============================================================================
// Analytics Operations
// =============================================================================

func (m *Manager) GetHourlyEventBin(storeID, hourKey string) (*types.HourlyEventBin, bool) {
	return m.analyticsStore.GetHourlyEventBin(storeID, hourKey)
}

func (m *Manager) SetHourlyEventBin(storeID, hourKey string, bin *types.HourlyEventBin) {
	m.analyticsStore.SetHourlyEventBin(storeID, hourKey, bin)
	m.touchStore(storeID)
}

func (m *Manager) GetHourlyEventRange(storeID string, hourKeys []string) (map[string]*types.HourlyEventBin, []string) {
	return m.analyticsStore.GetHourlyEventRange(storeID, hourKeys)
}

// GetRangeCacheStatus classifies an hourly range query: everything
// cached, only the current hour stale, or a full reload needed.
func (m *Manager) GetRangeCacheStatus(storeID string, hourKeys []string) types.RangeCacheStatus {
	currentHourKey := types.CurrentHourKey(time.Now())

	var missingHours []string
	currentHourExpired := false
	historicalMissing := false

	foundBins, missingKeys := m.GetHourlyEventRange(storeID, hourKeys)

	for _, missingKey := range missingKeys {
		missingHours = append(missingHours, missingKey)
		if missingKey == currentHourKey {
			currentHourExpired = true
		} else {
			historicalMissing = true
		}
	}

	for hourKey, bin := range foundBins {
		ttl := config.AnalyticsBinTTL
		if hourKey == currentHourKey {
			ttl = config.CurrentHourTTL
		}
		if time.Since(bin.ComputedAt) > ttl {
			missingHours = append(missingHours, hourKey)
			if hourKey == currentHourKey {
				currentHourExpired = true
			} else {
				historicalMissing = true
			}
		}
	}

	var action string
	if len(missingHours) == 0 {
		action = "proceed"
	} else if currentHourExpired && !historicalMissing {
		action = "refresh_current"
	} else {
		action = "load_range"
	}

	return types.RangeCacheStatus{
		Action:             action,
		CurrentHourExpired: currentHourExpired,
		HistoricalComplete: !historicalMissing,
		MissingHours:       missingHours,
	}
}

func (m *Manager) GetEventSummary(storeID, cacheKey string) (*types.EventSummaryCache, bool) {
	return m.analyticsStore.GetEventSummary(storeID, cacheKey)
}

func (m *Manager) SetEventSummary(storeID, cacheKey string, summary *types.EventSummaryCache) {
	m.analyticsStore.SetEventSummary(storeID, cacheKey, summary)
	m.touchStore(storeID)
}

func (m *Manager) GetDashboardData(storeID string) (*types.DashboardCache, bool) {
	return m.analyticsStore.GetDashboardData(storeID)
}

func (m *Manager) SetDashboardData(storeID string, data *types.DashboardCache) {
	m.analyticsStore.SetDashboardData(storeID, data)
	m.touchStore(storeID)
}

func (m *Manager) PurgeExpiredBins(storeID string) {
	m.analyticsStore.PurgeExpiredBins(storeID)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateAnalyticsCache(storeID string) {
	m.analyticsStore.InvalidateAnalyticsCache(storeID)
	m.touchStore(storeID)
}

func (m *Manager) UpdateLastFullHour(storeID, hourKey string) {
	m.analyticsStore.UpdateLastFullHour(storeID, hourKey)
	m.touchStore(storeID)
}

// =============================================================================
// Config Operations
// =============================================================================

func (m *Manager) GetSettings(storeID string) (map[string]any, bool) {
	return m.configStore.GetSettings(storeID)
}

func (m *Manager) SetSettings(storeID string, settings map[string]any) {
	m.configStore.SetSettings(storeID, settings)
	m.touchStore(storeID)
}

func (m *Manager) GetLanguages(storeID string) ([]*i18n.Language, bool) {
	return m.configStore.GetLanguages(storeID)
}

func (m *Manager) SetLanguages(storeID string, languages []*i18n.Language, defaultLanguage string) {
	m.configStore.SetLanguages(storeID, languages, defaultLanguage)
}

func (m *Manager) GetDefaultLanguage(storeID string) (string, bool) {
	return m.configStore.GetDefaultLanguage(storeID)
}

func (m *Manager) GetUILabels(storeID, language string) (map[string]string, bool) {
	return m.configStore.GetUILabels(storeID, language)
}

func (m *Manager) SetUILabels(storeID, language string, labels map[string]string) {
	m.configStore.SetUILabels(storeID, language, labels)
	m.touchStore(storeID)
}

func (m *Manager) InvalidateUILabels(storeID, language string) {
	m.configStore.InvalidateUILabels(storeID, language)
}

func (m *Manager) GetCreditBalance(storeID string) (*billing.CreditBalance, bool) {
	return m.configStore.GetCreditBalance(storeID)
}

func (m *Manager) SetCreditBalance(storeID string, balance *billing.CreditBalance) {
	m.configStore.SetCreditBalance(storeID, balance)
}

func (m *Manager) InvalidateCreditBalance(storeID string) {
	m.configStore.InvalidateCreditBalance(storeID)
}

func (m *Manager) GetCreditCosts(storeID string) (map[string]int, bool) {
	return m.configStore.GetCreditCosts(storeID)
}

func (m *Manager) SetCreditCosts(storeID string, costs map[string]int) {
	m.configStore.SetCreditCosts(storeID, costs)
}

func (m *Manager) InvalidateConfigCache(storeID string) {
	m.configStore.InvalidateConfigCache(storeID)
}

// =============================================================================
// Store-Level Operations
// =============================================================================

func (m *Manager) InvalidateStore(storeID string) {
	start := time.Now()
	if m.logger != nil {
		m.logger.Cache().Debug("Invalidating store cache", "storeId", storeID)
	}

	m.catalogStore.InvalidateCatalogCache(storeID)
	m.layoutsStore.InvalidateLayoutCache(storeID)
	m.fragmentsStore.InvalidateFragmentCache(storeID)
	m.sessionsStore.InvalidateSessionCache(storeID)
	m.analyticsStore.InvalidateAnalyticsCache(storeID)
	m.configStore.InvalidateConfigCache(storeID)
	m.touchStore(storeID)

	if m.logger != nil {
		m.logger.Cache().Info("Store cache invalidated", "storeId", storeID, "duration", time.Since(start))
	}
}

func (m *Manager) GetStoreStats(storeID string) interfaces.CacheStats {
	stats := interfaces.CacheStats{}

	if cache, exists := m.catalogStore.GetStoreCache(storeID); exists {
		cache.Mu.RLock()
		stats.Products = len(cache.Products)
		cache.Mu.RUnlock()
	}
	stats.Fragments = len(m.fragmentsStore.GetAllFragmentKeys(storeID))
	stats.Sessions = len(m.sessionsStore.GetAllSessionIDs(storeID))
	if cache, exists := m.analyticsStore.GetStoreCache(storeID); exists {
		cache.Mu.RLock()
		stats.EventBins = len(cache.EventBins)
		cache.Mu.RUnlock()
	}
	return stats
}

func (m *Manager) GetAllStoreIDs() []string {
	return m.catalogStore.GetAllStoreIDs()
}

func (m *Manager) InvalidateAll() {
	for _, storeID := range m.catalogStore.GetAllStoreIDs() {
		m.InvalidateStore(storeID)
	}
}

func (m *Manager) Health() map[string]any {
	return map[string]any{
		"status": "ok",
		"stores": len(m.catalogStore.GetAllStoreIDs()),
	}
}
