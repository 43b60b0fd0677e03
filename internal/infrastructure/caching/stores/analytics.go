package stores

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// AnalyticsStore implements hourly event bin caching with store isolation
type AnalyticsStore struct {
	storeCaches map[string]*types.StoreAnalyticsCache
	mu          sync.RWMutex
}

// NewAnalyticsStore creates a new analytics cache store
func NewAnalyticsStore() *AnalyticsStore {
	return &AnalyticsStore{
		storeCaches: make(map[string]*types.StoreAnalyticsCache),
	}
}

// InitializeStore creates cache structures for a store
func (as *AnalyticsStore) InitializeStore(storeID string) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.storeCaches[storeID] == nil {
		as.storeCaches[storeID] = &types.StoreAnalyticsCache{
			EventBins:      make(map[string]*types.HourlyEventBin),
			EventSummaries: make(map[string]*types.EventSummaryCache),
			LastUpdated:    time.Now().UTC(),
		}
	}
}

// GetStoreCache safely retrieves a store's analytics cache
func (as *AnalyticsStore) GetStoreCache(storeID string) (*types.StoreAnalyticsCache, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	cache, exists := as.storeCaches[storeID]
	return cache, exists
}

func (as *AnalyticsStore) ensureStoreCache(storeID string) *types.StoreAnalyticsCache {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		as.InitializeStore(storeID)
		cache, _ = as.GetStoreCache(storeID)
	}
	return cache
}

// binTTL returns the TTL for a bin. The current hour refreshes quickly,
// historical hours are stable and live for the retention window.
func binTTL(hourKey string) time.Duration {
	if hourKey == types.CurrentHourKey(time.Now()) {
		return config.CurrentHourTTL
	}
	return config.AnalyticsBinTTL
}

// =============================================================================
// Hourly Bin Operations
// =============================================================================

func (as *AnalyticsStore) GetHourlyEventBin(storeID, hourKey string) (*types.HourlyEventBin, bool) {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	bin, exists := cache.EventBins[hourKey]
	if !exists {
		return nil, false
	}
	if time.Since(bin.ComputedAt) > binTTL(hourKey) {
		return nil, false
	}
	return bin, true
}

func (as *AnalyticsStore) SetHourlyEventBin(storeID, hourKey string, bin *types.HourlyEventBin) {
	cache := as.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if bin.ComputedAt.IsZero() {
		bin.ComputedAt = time.Now().UTC()
	}
	if bin.TTL == 0 {
		bin.TTL = binTTL(hourKey)
	}
	cache.EventBins[hourKey] = bin
	cache.LastUpdated = time.Now().UTC()
}

// GetHourlyEventRange returns the cached bins for a set of hour keys plus
// the keys that missed.
func (as *AnalyticsStore) GetHourlyEventRange(storeID string, hourKeys []string) (map[string]*types.HourlyEventBin, []string) {
	found := make(map[string]*types.HourlyEventBin)
	missing := make([]string, 0)

	for _, hourKey := range hourKeys {
		if bin, exists := as.GetHourlyEventBin(storeID, hourKey); exists {
			found[hourKey] = bin
		} else {
			missing = append(missing, hourKey)
		}
	}
	return found, missing
}

// =============================================================================
// Summary Operations
// =============================================================================

func (as *AnalyticsStore) GetEventSummary(storeID, cacheKey string) (*types.EventSummaryCache, bool) {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	summary, exists := cache.EventSummaries[cacheKey]
	if !exists {
		return nil, false
	}
	if time.Since(summary.LastComputed) > 5*time.Minute {
		return nil, false
	}
	return summary, true
}

func (as *AnalyticsStore) SetEventSummary(storeID, cacheKey string, summary *types.EventSummaryCache) {
	cache := as.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if summary.LastComputed.IsZero() {
		summary.LastComputed = time.Now().UTC()
	}
	cache.EventSummaries[cacheKey] = summary
}

func (as *AnalyticsStore) GetDashboardData(storeID string) (*types.DashboardCache, bool) {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.Dashboard == nil {
		return nil, false
	}
	if time.Since(cache.Dashboard.LastComputed) > 10*time.Minute {
		return nil, false
	}
	return cache.Dashboard, true
}

func (as *AnalyticsStore) SetDashboardData(storeID string, data *types.DashboardCache) {
	cache := as.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if data != nil && data.LastComputed.IsZero() {
		data.LastComputed = time.Now().UTC()
	}
	cache.Dashboard = data
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// PurgeExpiredBins removes bins and summaries past their TTL
func (as *AnalyticsStore) PurgeExpiredBins(storeID string) {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	for hourKey, bin := range cache.EventBins {
		if time.Since(bin.ComputedAt) > binTTL(hourKey) {
			delete(cache.EventBins, hourKey)
		}
	}
	for cacheKey, summary := range cache.EventSummaries {
		if time.Since(summary.LastComputed) > 5*time.Minute {
			delete(cache.EventSummaries, cacheKey)
		}
	}
	if cache.Dashboard != nil && time.Since(cache.Dashboard.LastComputed) > 10*time.Minute {
		cache.Dashboard = nil
	}
}

// InvalidateAnalyticsCache clears all analytics cache for a store
func (as *AnalyticsStore) InvalidateAnalyticsCache(storeID string) {
	cache, exists := as.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.EventBins = make(map[string]*types.HourlyEventBin)
	cache.EventSummaries = make(map[string]*types.EventSummaryCache)
	cache.Dashboard = nil
	cache.LastFullHour = ""
	cache.LastUpdated = time.Now().UTC()
}

// UpdateLastFullHour records the most recently completed hour
func (as *AnalyticsStore) UpdateLastFullHour(storeID, hourKey string) {
	cache := as.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.LastFullHour = hourKey
}
