package stores

import (
	"strings"
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// FragmentsStore implements rendered HTML fragment caching with store isolation
type FragmentsStore struct {
	storeCaches map[string]*types.StoreFragmentCache
	mu          sync.RWMutex
}

// NewFragmentsStore creates a new fragments cache store
func NewFragmentsStore() *FragmentsStore {
	return &FragmentsStore{
		storeCaches: make(map[string]*types.StoreFragmentCache),
	}
}

// InitializeStore creates cache structures for a store
func (fs *FragmentsStore) InitializeStore(storeID string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.storeCaches[storeID] == nil {
		fs.storeCaches[storeID] = &types.StoreFragmentCache{
			Fragments: make(map[string]*types.Fragment),
			Deps:      make(map[string][]string),
		}
	}
}

// GetStoreCache safely retrieves a store's fragment cache
func (fs *FragmentsStore) GetStoreCache(storeID string) (*types.StoreFragmentCache, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	cache, exists := fs.storeCaches[storeID]
	return cache, exists
}

// =============================================================================
// Fragment Operations
// =============================================================================

// GetFragment retrieves a rendered fragment for a layout variant
func (fs *FragmentsStore) GetFragment(storeID, layoutID string, variant types.FragmentVariant) (*types.Fragment, bool) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	key := fs.BuildFragmentKey(layoutID, variant)
	fragment, exists := cache.Fragments[key]
	if !exists {
		return nil, false
	}

	if time.Since(fragment.LastUpdated) > config.FragmentTTL {
		return nil, false
	}

	return fragment, true
}

// SetFragment stores a rendered fragment with its entity dependencies
func (fs *FragmentsStore) SetFragment(storeID, layoutID string, variant types.FragmentVariant, html string, dependsOn []string) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		fs.InitializeStore(storeID)
		cache, _ = fs.GetStoreCache(storeID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	key := fs.BuildFragmentKey(layoutID, variant)
	cache.Fragments[key] = &types.Fragment{
		HTML:        html,
		LayoutID:    layoutID,
		Variant:     variant,
		DependsOn:   dependsOn,
		LastUpdated: time.Now().UTC(),
	}

	fs.updateDependencies(cache, key, dependsOn)
}

// BuildFragmentKey creates a unique key for a layout variant
func (fs *FragmentsStore) BuildFragmentKey(layoutID string, variant types.FragmentVariant) string {
	parts := []string{layoutID, variant.PageType, variant.ViewMode, variant.Language}
	if variant.QueryHash != "" {
		parts = append(parts, variant.QueryHash)
	}
	return strings.Join(parts, ":")
}

// updateDependencies updates the dependency mappings for invalidation
func (fs *FragmentsStore) updateDependencies(cache *types.StoreFragmentCache, key string, dependsOn []string) {
	for _, entityID := range dependsOn {
		found := false
		for _, existing := range cache.Deps[entityID] {
			if existing == key {
				found = true
				break
			}
		}
		if !found {
			cache.Deps[entityID] = append(cache.Deps[entityID], key)
		}
	}
}

// =============================================================================
// Dependency-Based Invalidation Operations
// =============================================================================

// InvalidateByDependency invalidates all fragments that depend on an entity.
// Entity IDs follow the "kind:id" convention, e.g. "product:p-1" or "layout:l-1".
func (fs *FragmentsStore) InvalidateByDependency(storeID, entityID string) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	dependentKeys, exists := cache.Deps[entityID]
	if !exists {
		return
	}

	for _, key := range dependentKeys {
		delete(cache.Fragments, key)
	}
	delete(cache.Deps, entityID)

	fs.cleanupOrphanedDependencies(cache, dependentKeys)
}

// cleanupOrphanedDependencies removes deleted fragment keys from dependency mappings
func (fs *FragmentsStore) cleanupOrphanedDependencies(cache *types.StoreFragmentCache, deletedKeys []string) {
	deleted := make(map[string]bool, len(deletedKeys))
	for _, key := range deletedKeys {
		deleted[key] = true
	}

	for entityID, keys := range cache.Deps {
		filtered := make([]string, 0, len(keys))
		for _, key := range keys {
			if !deleted[key] {
				filtered = append(filtered, key)
			}
		}
		if len(filtered) == 0 {
			delete(cache.Deps, entityID)
		} else {
			cache.Deps[entityID] = filtered
		}
	}
}

// InvalidateByPattern invalidates fragments matching a pattern
func (fs *FragmentsStore) InvalidateByPattern(storeID, pattern string) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	keysToDelete := make([]string, 0)
	for key := range cache.Fragments {
		if fs.matchesPattern(key, pattern) {
			keysToDelete = append(keysToDelete, key)
		}
	}

	for _, key := range keysToDelete {
		delete(cache.Fragments, key)
	}

	fs.cleanupOrphanedDependencies(cache, keysToDelete)
}

// matchesPattern checks if a fragment key matches the given pattern.
// "layoutId:*" matches every variant of a layout.
func (fs *FragmentsStore) matchesPattern(key, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(key, prefix)
	}
	return key == pattern
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// GetFragmentDependencies returns the fragment keys that depend on an entity
func (fs *FragmentsStore) GetFragmentDependencies(storeID, entityID string) ([]string, bool) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	deps, exists := cache.Deps[entityID]
	return deps, exists
}

// InvalidateFragmentCache clears all fragment cache for a store
func (fs *FragmentsStore) InvalidateFragmentCache(storeID string) {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Fragments = make(map[string]*types.Fragment)
	cache.Deps = make(map[string][]string)
}

// GetAllFragmentKeys returns all fragment keys for a store
func (fs *FragmentsStore) GetAllFragmentKeys(storeID string) []string {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return []string{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	keys := make([]string, 0, len(cache.Fragments))
	for key := range cache.Fragments {
		keys = append(keys, key)
	}
	return keys
}

// PurgeExpiredFragments removes expired fragments
func (fs *FragmentsStore) PurgeExpiredFragments(storeID string) int {
	cache, exists := fs.GetStoreCache(storeID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	expiredKeys := make([]string, 0)
	for key, fragment := range cache.Fragments {
		if time.Since(fragment.LastUpdated) > config.FragmentTTL {
			expiredKeys = append(expiredKeys, key)
		}
	}

	for _, key := range expiredKeys {
		delete(cache.Fragments, key)
	}

	fs.cleanupOrphanedDependencies(cache, expiredKeys)
	return len(expiredKeys)
}
