// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
)

// CatalogStore implements catalog entity caching with store isolation
type CatalogStore struct {
	storeCaches map[string]*types.StoreCatalogCache
	mu          sync.RWMutex
}

// NewCatalogStore creates a new catalog cache store
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		storeCaches: make(map[string]*types.StoreCatalogCache),
	}
}

// InitializeStore creates cache structures for a store
func (cs *CatalogStore) InitializeStore(storeID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.storeCaches[storeID] == nil {
		cs.storeCaches[storeID] = &types.StoreCatalogCache{
			Products:             make(map[string]*catalog.Product),
			Categories:           make(map[string]*catalog.Category),
			Attributes:           make(map[string]*catalog.Attribute),
			Coupons:              make(map[string]*catalog.Coupon),
			SeoTemplates:         make(map[string]*catalog.SeoTemplate),
			AbTests:              make(map[string]*catalog.AbTest),
			ProductSlugToID:      make(map[string]string),
			CategorySlugToID:     make(map[string]string),
			AttributeCodeToID:    make(map[string]string),
			CouponCodeToID:       make(map[string]string),
			SeoEntityTypeToID:    make(map[string]string),
			CategoryToProductIDs: make(map[string][]string),
			LastUpdated:          time.Now().UTC(),
		}
	}
}

// GetStoreCache safely retrieves a store's catalog cache
func (cs *CatalogStore) GetStoreCache(storeID string) (*types.StoreCatalogCache, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	cache, exists := cs.storeCaches[storeID]
	return cache, exists
}

// GetAllStoreIDs returns all store IDs present in the store
func (cs *CatalogStore) GetAllStoreIDs() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	ids := make([]string, 0, len(cs.storeCaches))
	for id := range cs.storeCaches {
		ids = append(ids, id)
	}
	return ids
}

func (cs *CatalogStore) ensureStoreCache(storeID string) *types.StoreCatalogCache {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		cs.InitializeStore(storeID)
		cache, _ = cs.GetStoreCache(storeID)
	}
	return cache
}

// =============================================================================
// Product Operations
// =============================================================================

func (cs *CatalogStore) GetProduct(storeID, id string) (*catalog.Product, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	product, exists := cache.Products[id]
	return product, exists
}

func (cs *CatalogStore) SetProduct(storeID string, product *catalog.Product) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Products[product.ID] = product
	if product.Slug != "" {
		cache.ProductSlugToID[product.Slug] = product.ID
	}
	cache.LastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetProductIDBySlug(storeID, slug string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.ProductSlugToID[slug]
	return id, exists
}

func (cs *CatalogStore) GetProductIDsByCategory(storeID, categoryID string) ([]string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	ids, exists := cache.CategoryToProductIDs[categoryID]
	return ids, exists
}

func (cs *CatalogStore) SetProductIDsByCategory(storeID, categoryID string, ids []string) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.CategoryToProductIDs[categoryID] = ids
}

func (cs *CatalogStore) InvalidateProduct(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	if product, ok := cache.Products[id]; ok && product.Slug != "" {
		delete(cache.ProductSlugToID, product.Slug)
	}
	delete(cache.Products, id)
	// Category membership may have changed, force a reload
	cache.CategoryToProductIDs = make(map[string][]string)
}

func (cs *CatalogStore) AddProductID(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllProductIDs = appendUnique(cache.AllProductIDs, id)
}

func (cs *CatalogStore) RemoveProductID(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllProductIDs = removeID(cache.AllProductIDs, id)
}

// =============================================================================
// Category Operations
// =============================================================================

func (cs *CatalogStore) GetCategory(storeID, id string) (*catalog.Category, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	category, exists := cache.Categories[id]
	return category, exists
}

func (cs *CatalogStore) SetCategory(storeID string, category *catalog.Category) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Categories[category.ID] = category
	if category.Slug != "" {
		cache.CategorySlugToID[category.Slug] = category.ID
	}
	cache.LastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetCategoryIDBySlug(storeID, slug string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.CategorySlugToID[slug]
	return id, exists
}

func (cs *CatalogStore) InvalidateCategory(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	if category, ok := cache.Categories[id]; ok && category.Slug != "" {
		delete(cache.CategorySlugToID, category.Slug)
	}
	delete(cache.Categories, id)
	delete(cache.CategoryToProductIDs, id)
}

func (cs *CatalogStore) AddCategoryID(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllCategoryIDs = appendUnique(cache.AllCategoryIDs, id)
}

func (cs *CatalogStore) RemoveCategoryID(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AllCategoryIDs = removeID(cache.AllCategoryIDs, id)
}

// =============================================================================
// Attribute Operations
// =============================================================================

func (cs *CatalogStore) GetAttribute(storeID, id string) (*catalog.Attribute, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	attribute, exists := cache.Attributes[id]
	return attribute, exists
}

func (cs *CatalogStore) SetAttribute(storeID string, attribute *catalog.Attribute) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Attributes[attribute.ID] = attribute
	if attribute.Code != "" {
		cache.AttributeCodeToID[attribute.Code] = attribute.ID
	}
}

func (cs *CatalogStore) GetAttributeIDByCode(storeID, code string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.AttributeCodeToID[code]
	return id, exists
}

func (cs *CatalogStore) InvalidateAttribute(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	if attribute, ok := cache.Attributes[id]; ok && attribute.Code != "" {
		delete(cache.AttributeCodeToID, attribute.Code)
	}
	delete(cache.Attributes, id)
	cache.AllAttributeIDs = removeID(cache.AllAttributeIDs, id)
}

// =============================================================================
// Coupon Operations
// =============================================================================

func (cs *CatalogStore) GetCoupon(storeID, id string) (*catalog.Coupon, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	coupon, exists := cache.Coupons[id]
	return coupon, exists
}

func (cs *CatalogStore) SetCoupon(storeID string, coupon *catalog.Coupon) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.Coupons[coupon.ID] = coupon
	if coupon.Code != "" {
		cache.CouponCodeToID[coupon.Code] = coupon.ID
	}
}

func (cs *CatalogStore) GetCouponIDByCode(storeID, code string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.CouponCodeToID[code]
	return id, exists
}

func (cs *CatalogStore) InvalidateCoupon(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	if coupon, ok := cache.Coupons[id]; ok && coupon.Code != "" {
		delete(cache.CouponCodeToID, coupon.Code)
	}
	delete(cache.Coupons, id)
	cache.AllCouponIDs = removeID(cache.AllCouponIDs, id)
}

// =============================================================================
// SEO Template Operations
// =============================================================================

func (cs *CatalogStore) GetSeoTemplate(storeID, id string) (*catalog.SeoTemplate, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	template, exists := cache.SeoTemplates[id]
	return template, exists
}

func (cs *CatalogStore) SetSeoTemplate(storeID string, template *catalog.SeoTemplate) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.SeoTemplates[template.ID] = template
	if template.EntityType != "" {
		cache.SeoEntityTypeToID[template.EntityType] = template.ID
	}
}

func (cs *CatalogStore) GetSeoTemplateIDByEntityType(storeID, entityType string) (string, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return "", false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	id, exists := cache.SeoEntityTypeToID[entityType]
	return id, exists
}

func (cs *CatalogStore) InvalidateSeoTemplate(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	if template, ok := cache.SeoTemplates[id]; ok && template.EntityType != "" {
		delete(cache.SeoEntityTypeToID, template.EntityType)
	}
	delete(cache.SeoTemplates, id)
}

// =============================================================================
// A/B Test Operations
// =============================================================================

func (cs *CatalogStore) GetAbTest(storeID, id string) (*catalog.AbTest, bool) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}
	cache.Mu.RLock()
	defer cache.Mu.RUnlock()
	test, exists := cache.AbTests[id]
	return test, exists
}

func (cs *CatalogStore) SetAbTest(storeID string, test *catalog.AbTest) {
	cache := cs.ensureStoreCache(storeID)
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	cache.AbTests[test.ID] = test
}

func (cs *CatalogStore) InvalidateAbTest(storeID, id string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()
	delete(cache.AbTests, id)
	cache.RunningAbTestIDs = removeID(cache.RunningAbTestIDs, id)
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// InvalidateCatalogCache clears all catalog cache for a store
func (cs *CatalogStore) InvalidateCatalogCache(storeID string) {
	cache, exists := cs.GetStoreCache(storeID)
	if !exists {
		return
	}
	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Products = make(map[string]*catalog.Product)
	cache.Categories = make(map[string]*catalog.Category)
	cache.Attributes = make(map[string]*catalog.Attribute)
	cache.Coupons = make(map[string]*catalog.Coupon)
	cache.SeoTemplates = make(map[string]*catalog.SeoTemplate)
	cache.AbTests = make(map[string]*catalog.AbTest)
	cache.ProductSlugToID = make(map[string]string)
	cache.CategorySlugToID = make(map[string]string)
	cache.AttributeCodeToID = make(map[string]string)
	cache.CouponCodeToID = make(map[string]string)
	cache.SeoEntityTypeToID = make(map[string]string)
	cache.CategoryToProductIDs = make(map[string][]string)
	cache.AllProductIDs = nil
	cache.AllCategoryIDs = nil
	cache.AllAttributeIDs = nil
	cache.AllCouponIDs = nil
	cache.RunningAbTestIDs = nil
	cache.LastUpdated = time.Now().UTC()
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	filtered := ids[:0]
	for _, existing := range ids {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	return filtered
}
