package stores

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// ConfigStore implements store settings and i18n caching with store isolation
type ConfigStore struct {
	storeCaches map[string]*types.StoreConfigCache
	mu          sync.RWMutex
}

// NewConfigStore creates a new config cache store
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		storeCaches: make(map[string]*types.StoreConfigCache),
	}
}

// InitializeStore creates cache structures for a store
func (cs *ConfigStore) InitializeStore(storeID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.storeCaches[storeID] == nil {
		cs.storeCaches[storeID] = &types.StoreConfigCache{
			Settings:            make(map[string]any),
			UILabels:            make(map[string]map[string]string),
			UILabelsLastUpdated: make(map[string]time.Time),
			CreditCosts:         make(map[string]int),
			LastUpdated:         time.Now().UTC(),
		}
	}
}

// GetStoreCache safely retrieves a store's config cache
func (cs *ConfigStore) GetStoreCache(storeID string) (*types.StoreConfigCache, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	cache, exists := cs.storeCaches[storeID]
	return cache, exists
}

func (cs *ConfigStore) ensureStoreCache(storeID string) *types.StoreConfigCache {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		cs.InitializeStore(storeID)
		cache, _ = cs.GetStoreCache(storeID)
	}
	return cache
}

// =============================================================================
// Settings Operations
// =============================================================================

func (cs *ConfigStore) GetSettings(storeID string) (map[string]any, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.SettingsLastUpdated.IsZero() {
		return nil, false
	}
	return cache.Settings, true
}

func (cs *ConfigStore) SetSettings(storeID string, settings map[string]any) {
	cache := cs.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Settings = settings
	cache.SettingsLastUpdated = time.Now().UTC()
	cache.LastUpdated = time.Now().UTC()
}

// =============================================================================
// Language Operations
// =============================================================================

func (cs *ConfigStore) GetLanguages(storeID string) ([]*i18n.Language, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if len(cache.Languages) == 0 {
		return nil, false
	}
	return cache.Languages, true
}

func (cs *ConfigStore) SetLanguages(storeID string, languages []*i18n.Language, defaultLanguage string) {
	cache := cs.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Languages = languages
	cache.DefaultLanguage = defaultLanguage
}

func (cs *ConfigStore) GetDefaultLanguage(storeID string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.DefaultLanguage == "" {
		return "", false
	}
	return cache.DefaultLanguage, true
}

// =============================================================================
// UI Label Operations
// =============================================================================

func (cs *ConfigStore) GetUILabels(storeID, language string) (map[string]string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	labels, exists := cache.UILabels[language]
	return labels, exists
}

func (cs *ConfigStore) SetUILabels(storeID, language string, labels map[string]string) {
	cache := cs.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.UILabels[language] = labels
	cache.UILabelsLastUpdated[language] = time.Now().UTC()
}

func (cs *ConfigStore) InvalidateUILabels(storeID, language string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	delete(cache.UILabels, language)
	delete(cache.UILabelsLastUpdated, language)
}

// =============================================================================
// Credit Operations
// =============================================================================

// GetCreditBalance returns the cached balance if still fresh. The short
// TTL keeps credit spends from running against a stale balance.
func (cs *ConfigStore) GetCreditBalance(storeID string) (*billing.CreditBalance, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if cache.CreditBalance == nil {
		return nil, false
	}
	if time.Since(cache.CreditBalanceFetchedAt) > config.CreditBalanceTTL {
		return nil, false
	}
	return cache.CreditBalance, true
}

func (cs *ConfigStore) SetCreditBalance(storeID string, balance *billing.CreditBalance) {
	cache := cs.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.CreditBalance = balance
	cache.CreditBalanceFetchedAt = time.Now().UTC()
}

func (cs *ConfigStore) InvalidateCreditBalance(storeID string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.CreditBalance = nil
	cache.CreditBalanceFetchedAt = time.Time{}
}

func (cs *ConfigStore) GetCreditCosts(storeID string) (map[string]int, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if len(cache.CreditCosts) == 0 {
		return nil, false
	}
	return cache.CreditCosts, true
}

func (cs *ConfigStore) SetCreditCosts(storeID string, costs map[string]int) {
	cache := cs.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.CreditCosts = costs
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// InvalidateConfigCache clears all config cache for a store
func (cs *ConfigStore) InvalidateConfigCache(storeID string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Settings = make(map[string]any)
	cache.SettingsLastUpdated = time.Time{}
	cache.Languages = nil
	cache.DefaultLanguage = ""
	cache.UILabels = make(map[string]map[string]string)
	cache.UILabelsLastUpdated = make(map[string]time.Time)
	cache.CreditBalance = nil
	cache.CreditBalanceFetchedAt = time.Time{}
	cache.CreditCosts = make(map[string]int)
	cache.LastUpdated = time.Now().UTC()
}
