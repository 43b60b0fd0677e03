// Package cleanup provides background worker
package cleanup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// Worker handles background cache cleanup operations
type Worker struct {
	cache  interfaces.Cache
	config *Config
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache interfaces.Cache, config *Config) *Worker {
	return &Worker{
		cache:  cache,
		config: config,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	log.Printf("Cache cleanup worker started (interval: %v, verbose: %v)",
		w.config.CleanupInterval, w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache cleanup worker stopping...")
			return
		case <-ticker.C:
			w.performCleanup(ctx)
		}
	}
}

// performCleanup executes cleanup for all active stores
func (w *Worker) performCleanup(ctx context.Context) {
	start := time.Now()
	reporter := NewReporter(w.cache)

	storeIDs, err := w.getActiveStores()
	if err != nil {
		reporter.LogError("Cache cleanup failed to get active stores", err)
		return
	}

	if w.config.VerboseReporting {
		reporter.LogStage("PERIODIC CACHE CLEANUP")

		for _, storeID := range storeIDs {
			fmt.Print(reporter.GenerateStoreReport(storeID))
		}
	}

	var totalCleaned int
	for _, storeID := range storeIDs {
		select {
		case <-ctx.Done():
			return
		default:
			cleaned := w.cleanupStore(storeID)
			totalCleaned += cleaned
		}
	}

	duration := time.Since(start)
	if totalCleaned > 0 {
		reporter.LogSuccess("Cache cleanup finished: %d items cleaned from %d stores in %v",
			totalCleaned, len(storeIDs), duration)
	} else if w.config.VerboseReporting {
		reporter.LogInfo("Cache cleanup completed - no expired items found (%v)", duration)
	}
}

// cleanupStore performs TTL-based cleanup for a single store
func (w *Worker) cleanupStore(storeID string) int {
	var totalCleaned int
	now := time.Now().UTC()

	// Type assert to reach the Manager's underlying stores
	mgr, ok := w.cache.(*manager.Manager)
	if !ok {
		// Fallback for generic interface, though less efficient
		w.cache.PurgeExpiredBins(storeID)
		return 1 // Conservative estimate
	}

	// 1. Catalog cache cleanup, cleared wholesale once stale
	catalogCache, exists := mgr.GetStoreCatalogCache(storeID)
	if exists && catalogCache != nil {
		catalogCache.Mu.RLock()
		stale := time.Since(catalogCache.LastUpdated) > w.config.CatalogCacheTTL
		catalogCache.Mu.RUnlock()
		if stale {
			mgr.InvalidateCatalogCache(storeID)
			totalCleaned++
		}
	}

	// 2. Session cache cleanup
	sessionCache, exists := mgr.GetStoreSessionCache(storeID)
	if exists && sessionCache != nil {
		sessionCache.Mu.Lock()
		for sessionID, session := range sessionCache.Sessions {
			expired := !session.ExpiresAt.IsZero() && now.After(session.ExpiresAt)
			if !expired && time.Since(session.LastActivity) > w.config.SessionCacheTTL {
				expired = true
			}
			if expired {
				delete(sessionCache.Sessions, sessionID)
				totalCleaned++
			}
		}
		for visitorID, state := range sessionCache.Visitors {
			if time.Since(state.LastActivity) > w.config.SessionCacheTTL {
				delete(sessionCache.Visitors, visitorID)
				totalCleaned++
			}
		}
		sessionCache.Mu.Unlock()
	}

	// 3. Fragment cache cleanup
	fragmentCache, exists := mgr.GetStoreFragmentCache(storeID)
	if exists && fragmentCache != nil {
		fragmentCache.Mu.Lock()
		for key, fragment := range fragmentCache.Fragments {
			if time.Since(fragment.LastUpdated) > w.config.FragmentCacheTTL {
				delete(fragmentCache.Fragments, key)
				totalCleaned++
			}
		}
		fragmentCache.Mu.Unlock()
	}

	// 4. Analytics cache cleanup (bin TTLs vary by hour)
	mgr.PurgeExpiredBins(storeID)

	return totalCleaned
}

// getActiveStores loads the store registry and returns active store IDs
func (w *Worker) getActiveStores() ([]string, error) {
	registry, err := tenant.LoadStoreRegistry()
	if err != nil {
		return nil, err
	}

	activeStores := make([]string, 0)
	for storeID, info := range registry.Stores {
		if info.Status == "active" {
			activeStores = append(activeStores, storeID)
		}
	}

	return activeStores, nil
}
