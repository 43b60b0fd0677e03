package stores

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
)

// LayoutsStore implements slot layout caching with store isolation
type LayoutsStore struct {
	storeCaches map[string]*types.StoreLayoutCache
	mu          sync.RWMutex
}

// NewLayoutsStore creates a new layouts cache store
func NewLayoutsStore() *LayoutsStore {
	return &LayoutsStore{
		storeCaches: make(map[string]*types.StoreLayoutCache),
	}
}

// InitializeStore creates cache structures for a store
func (ls *LayoutsStore) InitializeStore(storeID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.storeCaches[storeID] == nil {
		ls.storeCaches[storeID] = &types.StoreLayoutCache{
			Layouts:             make(map[string]*rendering.SlotLayout),
			PublishedByPageType: make(map[string]string),
			LastUpdated:         time.Now().UTC(),
		}
	}
}

// GetStoreCache safely retrieves a store's layout cache
func (ls *LayoutsStore) GetStoreCache(storeID string) (*types.StoreLayoutCache, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	cache, exists := ls.storeCaches[storeID]
	return cache, exists
}

func (ls *LayoutsStore) ensureStoreCache(storeID string) *types.StoreLayoutCache {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		ls.InitializeStore(storeID)
		cache, _ = ls.GetStoreCache(storeID)
	}
	return cache
}

func (ls *LayoutsStore) GetLayout(storeID, id string) (*rendering.SlotLayout, bool) {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	layout, exists := cache.Layouts[id]
	return layout, exists
}

func (ls *LayoutsStore) SetLayout(storeID string, layout *rendering.SlotLayout) {
	cache := ls.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Layouts[layout.ID] = layout
	cache.LastUpdated = time.Now().UTC()
}

func (ls *LayoutsStore) GetAllLayoutIDs(storeID string) ([]string, bool) {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	if len(cache.AllLayoutIDs) == 0 {
		return nil, false
	}
	ids := make([]string, len(cache.AllLayoutIDs))
	copy(ids, cache.AllLayoutIDs)
	return ids, true
}

func (ls *LayoutsStore) SetAllLayoutIDs(storeID string, ids []string) {
	cache := ls.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllLayoutIDs = ids
}

// GetPublishedLayoutID resolves the published layout for a page type
func (ls *LayoutsStore) GetPublishedLayoutID(storeID, pageType string) (string, bool) {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.PublishedByPageType[pageType]
	return id, exists
}

func (ls *LayoutsStore) SetPublishedLayoutID(storeID, pageType, layoutID string) {
	cache := ls.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.PublishedByPageType[pageType] = layoutID
}

func (ls *LayoutsStore) InvalidateLayout(storeID, id string) {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	delete(cache.Layouts, id)
	for pageType, publishedID := range cache.PublishedByPageType {
		if publishedID == id {
			delete(cache.PublishedByPageType, pageType)
		}
	}
	cache.AllLayoutIDs = removeID(cache.AllLayoutIDs, id)
}

// InvalidateLayoutCache clears all layout cache for a store
func (ls *LayoutsStore) InvalidateLayoutCache(storeID string) {
	cache, exists := ls.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Layouts = make(map[string]*rendering.SlotLayout)
	cache.PublishedByPageType = make(map[string]string)
	cache.AllLayoutIDs = nil
	cache.LastUpdated = time.Now().UTC()
}
