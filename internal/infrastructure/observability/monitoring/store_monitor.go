// Package monitoring provides per-store performance monitoring and
// health tracking for multi-store operations.
package monitoring

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// StoreMetrics represents performance metrics for a single store
type StoreMetrics struct {
	StoreID     string    `json:"storeId"`
	LastUpdated time.Time `json:"lastUpdated"`

	// Request performance
	TotalRequests   int64         `json:"totalRequests"`
	FailedRequests  int64         `json:"failedRequests"`
	ErrorRate       float64       `json:"errorRate"`
	AvgResponseTime time.Duration `json:"avgResponseTime"`
	MaxResponseTime time.Duration `json:"maxResponseTime"`

	// Cache performance
	CacheHits     int64   `json:"cacheHits"`
	CacheMisses   int64   `json:"cacheMisses"`
	CacheHitRatio float64 `json:"cacheHitRatio"`

	// Database performance
	DatabaseQueries int64         `json:"databaseQueries"`
	SlowQueries     int64         `json:"slowQueries"`
	AvgQueryTime    time.Duration `json:"avgQueryTime"`

	// Business operations
	FragmentRenders   int64 `json:"fragmentRenders"`
	CatalogOperations int64 `json:"catalogOperations"`
	AnalyticsQueries  int64 `json:"analyticsQueries"`
	EventsIngested    int64 `json:"eventsIngested"`

	// Health
	HealthStatus    HealthStatus `json:"healthStatus"`
	LastHealthCheck time.Time    `json:"lastHealthCheck"`
	AlertCount      int          `json:"alertCount"`
}

// HealthStatus represents the health state of a store
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthCritical  HealthStatus = "critical"
	HealthUnknown   HealthStatus = "unknown"
)

// HealthThresholds defines the thresholds for determining store health
type HealthThresholds struct {
	WarningResponseTime   time.Duration `json:"warningResponseTime"`
	CriticalResponseTime  time.Duration `json:"criticalResponseTime"`
	WarningErrorRate      float64       `json:"warningErrorRate"`
	CriticalErrorRate     float64       `json:"criticalErrorRate"`
	WarningCacheHitRatio  float64       `json:"warningCacheHitRatio"`
	CriticalCacheHitRatio float64       `json:"criticalCacheHitRatio"`
	WarningQueryTime      time.Duration `json:"warningQueryTime"`
	CriticalQueryTime     time.Duration `json:"criticalQueryTime"`
}

// DefaultHealthThresholds returns sensible default health thresholds
func DefaultHealthThresholds() *HealthThresholds {
	return &HealthThresholds{
		WarningResponseTime:   500 * time.Millisecond,
		CriticalResponseTime:  2 * time.Second,
		WarningErrorRate:      0.05,
		CriticalErrorRate:     0.15,
		WarningCacheHitRatio:  0.80,
		CriticalCacheHitRatio: 0.60,
		WarningQueryTime:      100 * time.Millisecond,
		CriticalQueryTime:     500 * time.Millisecond,
	}
}

// StoreAlert describes a threshold breach for a store
type StoreAlert struct {
	ID        string       `json:"id"`
	StoreID   string       `json:"storeId"`
	Severity  HealthStatus `json:"severity"`
	Metric    string       `json:"metric"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}

// AlertCallback is invoked when a store crosses a health threshold
type AlertCallback func(alert *StoreAlert)

// StoreMonitor tracks performance metrics across all stores
type StoreMonitor struct {
	metrics        map[string]*StoreMetrics
	thresholds     *HealthThresholds
	alertCallbacks []AlertCallback
	mu             sync.RWMutex
	started        time.Time
	staleAfter     time.Duration
}

// NewStoreMonitor creates a store monitor with default thresholds
func NewStoreMonitor() *StoreMonitor {
	return &StoreMonitor{
		metrics:    make(map[string]*StoreMetrics),
		thresholds: DefaultHealthThresholds(),
		started:    time.Now(),
		staleAfter: 24 * time.Hour,
	}
}

func (sm *StoreMonitor) ensureMetrics(storeID string) *StoreMetrics {
	if metrics, exists := sm.metrics[storeID]; exists {
		return metrics
	}
	metrics := &StoreMetrics{
		StoreID:      storeID,
		HealthStatus: HealthUnknown,
		LastUpdated:  time.Now(),
	}
	sm.metrics[storeID] = metrics
	return metrics
}

// RecordRequest records a completed request for a store
func (sm *StoreMonitor) RecordRequest(storeID string, duration time.Duration, success bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	metrics := sm.ensureMetrics(storeID)
	metrics.TotalRequests++
	if !success {
		metrics.FailedRequests++
	}
	if metrics.TotalRequests > 0 {
		metrics.ErrorRate = float64(metrics.FailedRequests) / float64(metrics.TotalRequests)
	}

	// Exponential moving average keeps the value responsive without a window buffer
	if metrics.AvgResponseTime == 0 {
		metrics.AvgResponseTime = duration
	} else {
		metrics.AvgResponseTime = (metrics.AvgResponseTime*9 + duration) / 10
	}
	if duration > metrics.MaxResponseTime {
		metrics.MaxResponseTime = duration
	}
	metrics.LastUpdated = time.Now()

	sm.refreshHealth(metrics)
}

// RecordCacheOperation records a cache hit or miss for a store
func (sm *StoreMonitor) RecordCacheOperation(storeID string, hit bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	metrics := sm.ensureMetrics(storeID)
	if hit {
		metrics.CacheHits++
	} else {
		metrics.CacheMisses++
	}
	total := metrics.CacheHits + metrics.CacheMisses
	if total > 0 {
		metrics.CacheHitRatio = float64(metrics.CacheHits) / float64(total)
	}
	metrics.LastUpdated = time.Now()
}

// RecordDatabaseQuery records a database query for a store
func (sm *StoreMonitor) RecordDatabaseQuery(storeID string, duration time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	metrics := sm.ensureMetrics(storeID)
	metrics.DatabaseQueries++
	if duration > sm.thresholds.WarningQueryTime {
		metrics.SlowQueries++
	}
	if metrics.AvgQueryTime == 0 {
		metrics.AvgQueryTime = duration
	} else {
		metrics.AvgQueryTime = (metrics.AvgQueryTime*9 + duration) / 10
	}
	metrics.LastUpdated = time.Now()
}

// RecordBusinessOperation increments a named business counter for a store
func (sm *StoreMonitor) RecordBusinessOperation(storeID, operation string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	metrics := sm.ensureMetrics(storeID)
	switch operation {
	case "fragment_render":
		metrics.FragmentRenders++
	case "catalog_operation":
		metrics.CatalogOperations++
	case "analytics_query":
		metrics.AnalyticsQueries++
	case "event_ingested":
		metrics.EventsIngested++
	}
	metrics.LastUpdated = time.Now()
}

// refreshHealth recalculates a store's health status. Caller holds the lock.
func (sm *StoreMonitor) refreshHealth(metrics *StoreMetrics) {
	previous := metrics.HealthStatus
	metrics.HealthStatus = sm.calculateHealthStatus(metrics)
	metrics.LastHealthCheck = time.Now()

	if metrics.HealthStatus != previous &&
		(metrics.HealthStatus == HealthUnhealthy || metrics.HealthStatus == HealthCritical) {
		metrics.AlertCount++
		alert := &StoreAlert{
			ID:        fmt.Sprintf("alert_%d", time.Now().UnixNano()),
			StoreID:   metrics.StoreID,
			Severity:  metrics.HealthStatus,
			Metric:    "health_status",
			Message:   fmt.Sprintf("store %s health degraded to %s", metrics.StoreID, metrics.HealthStatus),
			Timestamp: time.Now(),
		}
		for _, callback := range sm.alertCallbacks {
			go callback(alert)
		}
	}
}

func (sm *StoreMonitor) calculateHealthStatus(metrics *StoreMetrics) HealthStatus {
	if metrics.TotalRequests == 0 {
		return HealthUnknown
	}

	critical := 0
	warning := 0

	if metrics.AvgResponseTime > sm.thresholds.CriticalResponseTime {
		critical++
	} else if metrics.AvgResponseTime > sm.thresholds.WarningResponseTime {
		warning++
	}

	if metrics.ErrorRate > sm.thresholds.CriticalErrorRate {
		critical++
	} else if metrics.ErrorRate > sm.thresholds.WarningErrorRate {
		warning++
	}

	if total := metrics.CacheHits + metrics.CacheMisses; total > 100 {
		if metrics.CacheHitRatio < sm.thresholds.CriticalCacheHitRatio {
			critical++
		} else if metrics.CacheHitRatio < sm.thresholds.WarningCacheHitRatio {
			warning++
		}
	}

	if metrics.AvgQueryTime > sm.thresholds.CriticalQueryTime {
		critical++
	} else if metrics.AvgQueryTime > sm.thresholds.WarningQueryTime {
		warning++
	}

	switch {
	case critical >= 2:
		return HealthCritical
	case critical == 1:
		return HealthUnhealthy
	case warning >= 2:
		return HealthDegraded
	default:
		return HealthHealthy
	}
}

// GetMetrics returns a copy of the metrics for one store
func (sm *StoreMonitor) GetMetrics(storeID string) *StoreMetrics {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	metrics, exists := sm.metrics[storeID]
	if !exists {
		return nil
	}
	copied := *metrics
	return &copied
}

// GetAllMetrics returns copies of metrics for every tracked store
func (sm *StoreMonitor) GetAllMetrics() map[string]*StoreMetrics {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	result := make(map[string]*StoreMetrics, len(sm.metrics))
	for storeID, metrics := range sm.metrics {
		copied := *metrics
		result[storeID] = &copied
	}
	return result
}

// CleanupStaleMetrics drops metrics for stores with no recent activity
func (sm *StoreMonitor) CleanupStaleMetrics() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-sm.staleAfter)
	for storeID, metrics := range sm.metrics {
		if metrics.LastUpdated.Before(cutoff) {
			delete(sm.metrics, storeID)
			removed++
		}
	}
	return removed
}

// AddAlertCallback registers a callback for health alerts
func (sm *StoreMonitor) AddAlertCallback(callback AlertCallback) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.alertCallbacks = append(sm.alertCallbacks, callback)
}

// SetThresholds replaces the health thresholds
func (sm *StoreMonitor) SetThresholds(thresholds *HealthThresholds) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.thresholds = thresholds
}

// GetSystemStats returns process-wide runtime statistics
func (sm *StoreMonitor) GetSystemStats() map[string]any {
	sm.mu.RLock()
	storeCount := len(sm.metrics)
	var totalRequests, totalErrors int64
	healthCounts := make(map[HealthStatus]int)
	for _, metrics := range sm.metrics {
		totalRequests += metrics.TotalRequests
		totalErrors += metrics.FailedRequests
		healthCounts[metrics.HealthStatus]++
	}
	sm.mu.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]any{
		"uptime":         time.Since(sm.started).String(),
		"storeCount":     storeCount,
		"totalRequests":  totalRequests,
		"totalErrors":    totalErrors,
		"healthCounts":   healthCounts,
		"goroutineCount": runtime.NumGoroutine(),
		"memoryUsageMB":  memStats.Alloc / 1024 / 1024,
	}
}
