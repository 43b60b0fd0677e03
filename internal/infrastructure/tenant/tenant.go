// Package tenant manages store-specific configurations and context,
// isolating multi-store logic from the rest of the application.
package tenant

import (
	"fmt"
	"log"
	"sync"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// Manager coordinates store detection and context creation
type Manager struct {
	detector       *Detector
	cacheManager   *manager.Manager
	contexts       map[string]*Context
	contextMutexes sync.Map // Per-store mutexes for fine-grained locking
	globalMutex    sync.RWMutex
	logger         *logging.ChanneledLogger
}

// NewManager creates and initializes a new store manager.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	detector, err := NewDetector(logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize store detector: %v", err))
	}

	cacheManager := manager.NewManager(logger)

	return &Manager{
		detector:     detector,
		cacheManager: cacheManager,
		contexts:     make(map[string]*Context),
		logger:       logger,
	}
}

// GetContext creates or retrieves a store context for the request
func (m *Manager) GetContext(c *gin.Context) (*Context, error) {
	storeID, err := m.detector.DetectStore(c)
	if err != nil {
		return nil, fmt.Errorf("store detection failed: %w", err)
	}

	m.globalMutex.RLock()
	if ctx, exists := m.contexts[storeID]; exists {
		m.globalMutex.RUnlock()
		if ctx.Database != nil && ctx.Database.Conn != nil {
			return ctx, nil
		}
	} else {
		m.globalMutex.RUnlock()
	}

	storeMutexInterface, _ := m.contextMutexes.LoadOrStore(storeID, &sync.Mutex{})
	storeMutex := storeMutexInterface.(*sync.Mutex)

	storeMutex.Lock()
	defer storeMutex.Unlock()

	m.globalMutex.RLock()
	if ctx, exists := m.contexts[storeID]; exists {
		m.globalMutex.RUnlock()
		if ctx.Database != nil && ctx.Database.Conn != nil {
			return ctx, nil
		}
	} else {
		m.globalMutex.RUnlock()
	}

	return m.createContext(storeID)
}

// NewContextFromID creates a new store context from a store ID string.
func (m *Manager) NewContextFromID(storeID string) (*Context, error) {
	return m.createContext(storeID)
}

// createContext creates a new store context
func (m *Manager) createContext(storeID string) (*Context, error) {
	cfg, err := LoadStoreConfig(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}

	db, err := NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	status := m.detector.GetStoreStatus(storeID)

	ctx := &Context{
		StoreID:      storeID,
		Config:       cfg,
		Database:     db,
		Status:       status,
		CacheManager: m.cacheManager,
		Logger:       m.logger,
	}

	m.globalMutex.Lock()
	m.contexts[storeID] = ctx
	m.globalMutex.Unlock()

	return ctx, nil
}

// PreActivateAllStores activates all stores in the registry during startup
func (m *Manager) PreActivateAllStores() error {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return fmt.Errorf("failed to load store registry for pre-activation: %w", err)
	}

	if len(registry.Stores) == 0 {
		return nil
	}

	var failedStores []string

	for storeID, info := range registry.Stores {
		if info.Status == "active" {
			continue
		}
		// Reserved stores wait for their activation token
		if info.Status == "reserved" {
			continue
		}

		if err := m.preActivateSingleStore(storeID); err != nil {
			failedStores = append(failedStores, storeID)
			continue
		}
	}

	if err := m.detector.RefreshRegistry(); err != nil {
		return fmt.Errorf("failed to refresh detector registry: %w", err)
	}

	if len(failedStores) > 0 {
		return fmt.Errorf("pre-activation failed for stores: %v", failedStores)
	}

	return nil
}

// preActivateSingleStore activates a single store during startup
func (m *Manager) preActivateSingleStore(storeID string) error {
	ctx, err := m.createContext(storeID)
	if err != nil {
		return fmt.Errorf("failed to create context for store %s: %w", storeID, err)
	}

	if err := ctx.Database.Conn.Ping(); err != nil {
		return fmt.Errorf("database connection test failed for store %s: %w", storeID, err)
	}

	dbType := "sqlite3"
	if ctx.Database.UseTurso {
		dbType = "turso"
	}
	m.detector.UpdateStoreStatus(storeID, "active", dbType)
	if err := UpdateRegistryStatus(storeID, "active", dbType); err != nil {
		return fmt.Errorf("failed to persist status for store %s: %w", storeID, err)
	}

	return nil
}

// ValidatePreActivation verifies all stores are active after pre-activation
func (m *Manager) ValidatePreActivation() error {
	log.Println("=== Validating pre-activation results ===")

	registry, err := LoadStoreRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry for validation: %w", err)
	}

	if len(registry.Stores) == 0 {
		log.Println("No stores to validate")
		return nil
	}

	inactiveStores := make([]string, 0)
	activeStores := make([]string, 0)
	reservedStores := make([]string, 0)

	for storeID, info := range registry.Stores {
		switch info.Status {
		case "active":
			activeStores = append(activeStores, storeID)
		case "reserved":
			reservedStores = append(reservedStores, storeID)
		default:
			inactiveStores = append(inactiveStores, storeID)
		}
	}

	log.Printf("Active stores: %v", activeStores)
	if len(reservedStores) > 0 {
		log.Printf("Reserved stores (awaiting activation): %v", reservedStores)
	}

	if len(inactiveStores) > 0 {
		log.Printf("Inactive stores: %v", inactiveStores)
		return fmt.Errorf("validation failed - %d stores still inactive: %v",
			len(inactiveStores), inactiveStores)
	}

	log.Printf("Validation passed - %d stores active, %d reserved", len(activeStores), len(reservedStores))
	return nil
}

// GetActiveStoreCount returns the number of active stores
func (m *Manager) GetActiveStoreCount() (int, error) {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return 0, fmt.Errorf("failed to load store registry: %w", err)
	}

	activeCount := 0
	for _, info := range registry.Stores {
		if info.Status == "active" {
			activeCount++
		}
	}

	return activeCount, nil
}

// GetCacheManager returns the cache manager for external access
func (m *Manager) GetCacheManager() *manager.Manager {
	return m.cacheManager
}

// GetDetector returns the detector for external access (needed by startup code)
func (m *Manager) GetDetector() *Detector {
	return m.detector
}

// Close cleans up all store contexts
func (m *Manager) Close() error {
	m.globalMutex.Lock()
	defer m.globalMutex.Unlock()

	for _, ctx := range m.contexts {
		if err := ctx.Close(); err != nil {
			continue
		}
	}

	m.contexts = make(map[string]*Context)
	return nil
}

// SetLogger sets the logger for the store manager after container initialization
func (m *Manager) SetLogger(logger *logging.ChanneledLogger) {
	m.logger = logger

	if m.detector != nil && logger != nil {
		m.detector.logger = logger
	}
}

// GetLogger returns the logger for middleware access
func (m *Manager) GetLogger() *logging.ChanneledLogger {
	return m.logger
}
