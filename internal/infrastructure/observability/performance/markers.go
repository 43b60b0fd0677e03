// Package performance provides performance monitoring data structures
// and utilities for tracking operation performance across DainoStore.
package performance

import (
	"runtime"
	"time"
)

// Marker represents a single performance measurement for an operation
type Marker struct {
	Operation   string         `json:"operation"`       // e.g., "render:category_page", "catalog:list_products"
	StoreID     string         `json:"storeId"`         // Store identifier for multi-store isolation
	StartTime   time.Time      `json:"startTime"`       // When the operation started
	EndTime     time.Time      `json:"endTime"`         // When the operation completed
	Duration    time.Duration  `json:"duration"`        // Total operation duration
	Success     bool           `json:"success"`         // Whether the operation completed successfully
	Error       string         `json:"error,omitempty"` // Error message if operation failed
	Metadata    map[string]any `json:"metadata"`        // Additional operation-specific data
	MemoryUsage int64          `json:"memoryUsage"`     // Memory allocated during operation (bytes)
	CacheHits   int            `json:"cacheHits"`       // Number of cache hits during operation
	CacheMisses int            `json:"cacheMisses"`     // Number of cache misses during operation
	Completed   bool           `json:"completed"`       // Whether Complete() has been called
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	if m.Completed {
		return
	}

	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	m.MemoryUsage = int64(memStats.Alloc)
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err != nil {
		m.Error = err.Error()
		m.Success = false
	}
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// AddCacheHit increments the cache hit counter
func (m *Marker) AddCacheHit() {
	m.CacheHits++
}

// AddCacheMiss increments the cache miss counter
func (m *Marker) AddCacheMiss() {
	m.CacheMisses++
}

// GetCacheHitRatio returns the cache hit ratio (0.0 to 1.0)
func (m *Marker) GetCacheHitRatio() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0.0
	}
	return float64(m.CacheHits) / float64(total)
}

// RenderPerformanceTracker contains markers for storefront rendering
type RenderPerformanceTracker struct {
	LayoutFetch        *Marker `json:"layoutFetch,omitempty"`
	VariableResolution *Marker `json:"variableResolution,omitempty"`
	FragmentGeneration *Marker `json:"fragmentGeneration,omitempty"`
	TemplateRendering  *Marker `json:"templateRendering,omitempty"`
}

// CatalogPerformanceTracker contains markers for catalog operations
type CatalogPerformanceTracker struct {
	ProductQuery   *Marker `json:"productQuery,omitempty"`
	CategoryQuery  *Marker `json:"categoryQuery,omitempty"`
	AttributeQuery *Marker `json:"attributeQuery,omitempty"`
	CacheOperation *Marker `json:"cacheOperation,omitempty"`
}

// AnalyticsPerformanceTracker contains markers for event analytics
type AnalyticsPerformanceTracker struct {
	EventIngest  *Marker `json:"eventIngest,omitempty"`
	CountQuery   *Marker `json:"countQuery,omitempty"`
	CacheWarming *Marker `json:"cacheWarming,omitempty"`
}

// StorePerformanceTracker contains markers for store lifecycle operations
type StorePerformanceTracker struct {
	StoreActivation     *Marker `json:"storeActivation,omitempty"`
	DatabaseConnection  *Marker `json:"databaseConnection,omitempty"`
	CacheInitialization *Marker `json:"cacheInitialization,omitempty"`
	ConfigurationLoad   *Marker `json:"configurationLoad,omitempty"`
}

// SystemPerformanceTracker contains markers for system-wide operations
type SystemPerformanceTracker struct {
	ApplicationStartup   *Marker `json:"applicationStartup,omitempty"`
	ContainerBuild       *Marker `json:"containerBuild,omitempty"`
	ServerInitialization *Marker `json:"serverInitialization,omitempty"`
	GracefulShutdown     *Marker `json:"gracefulShutdown,omitempty"`
}

// PerformanceSnapshot represents a point-in-time view of system performance
type PerformanceSnapshot struct {
	Timestamp           time.Time                    `json:"timestamp"`
	StoreID             string                       `json:"storeId"`
	Render              *RenderPerformanceTracker    `json:"render,omitempty"`
	Catalog             *CatalogPerformanceTracker   `json:"catalog,omitempty"`
	Analytics           *AnalyticsPerformanceTracker `json:"analytics,omitempty"`
	Store               *StorePerformanceTracker     `json:"store,omitempty"`
	System              *SystemPerformanceTracker    `json:"system,omitempty"`
	OverallHealth       HealthStatus                 `json:"overallHealth"`
	ActiveOperations    int                          `json:"activeOperations"`
	CompletedOperations int                          `json:"completedOperations"`
}

// HealthStatus represents the overall health of a system component
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthUnknown   HealthStatus = "unknown"
)

// PerformanceAlert represents a performance threshold violation
type PerformanceAlert struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	StoreID      string         `json:"storeId"`
	Severity     AlertSeverity  `json:"severity"`
	Operation    string         `json:"operation"`
	Threshold    time.Duration  `json:"threshold"`
	Actual       time.Duration  `json:"actual"`
	Message      string         `json:"message"`
	Metadata     map[string]any `json:"metadata"`
	Acknowledged bool           `json:"acknowledged"`
}

// AlertSeverity represents the severity level of a performance alert
type AlertSeverity string

const (
	AlertInfo     AlertSeverity = "info"
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)
