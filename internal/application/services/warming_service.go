package services

import (
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// WarmingService preloads every active store's hot read paths into the
// per-store caches so the first shopper request after startup does not
// pay the full database fan-out.
type WarmingService struct {
	storeManager *tenant.Manager
	locks        *caching.WarmingLock
}

// NewWarmingService creates a new warming service.
func NewWarmingService(storeManager *tenant.Manager) *WarmingService {
	return &WarmingService{
		storeManager: storeManager,
		locks:        caching.NewWarmingLock(),
	}
}

// WarmAllStores warms every active store sequentially. A second call
// while one is running is a no-op; warming is idempotent but not worth
// doubling up.
func (s *WarmingService) WarmAllStores() error {
	if !s.locks.TryLock("all") {
		return nil
	}
	defer s.locks.Unlock("all")

	registry, err := tenant.LoadStoreRegistry()
	if err != nil {
		return fmt.Errorf("failed to load store registry: %w", err)
	}

	for storeID, info := range registry.Stores {
		if info.Status != "active" {
			continue
		}
		if err := s.WarmStore(storeID); err != nil {
			s.storeManager.GetLogger().Cache().Error("Store warming failed",
				"error", err.Error(), "storeId", storeID)
		}
	}
	return nil
}

// WarmStore loads one store's catalog, layouts, languages, labels, and
// settings through the cache-first repositories, leaving their caches
// populated.
func (s *WarmingService) WarmStore(storeID string) error {
	if !s.locks.TryLock(storeID) {
		return nil
	}
	defer s.locks.Unlock(storeID)

	start := time.Now()

	storeCtx, err := s.storeManager.NewContextFromID(storeID)
	if err != nil {
		return fmt.Errorf("failed to open store context: %w", err)
	}

	if _, err := storeCtx.ProductRepo().FindAll(storeID); err != nil {
		return fmt.Errorf("failed to warm products: %w", err)
	}
	if _, err := storeCtx.CategoryRepo().FindAll(storeID); err != nil {
		return fmt.Errorf("failed to warm categories: %w", err)
	}
	if _, err := storeCtx.AttributeRepo().FindAll(storeID); err != nil {
		return fmt.Errorf("failed to warm attributes: %w", err)
	}
	if _, err := storeCtx.LayoutRepo().FindAll(storeID); err != nil {
		return fmt.Errorf("failed to warm layouts: %w", err)
	}
	if _, err := storeCtx.SettingsRepo().FindAll(storeID); err != nil {
		return fmt.Errorf("failed to warm settings: %w", err)
	}

	languages, err := storeCtx.LanguageRepo().FindAll(storeID)
	if err != nil {
		return fmt.Errorf("failed to warm languages: %w", err)
	}
	for _, language := range languages {
		if !language.IsActive {
			continue
		}
		if _, err := storeCtx.TranslationRepo().FindUILabels(storeID, language.Code); err != nil {
			return fmt.Errorf("failed to warm ui labels for %s: %w", language.Code, err)
		}
	}

	storeCtx.Logger.Cache().Info("Store caches warmed",
		"storeId", storeID, "duration", time.Since(start))
	return nil
}
