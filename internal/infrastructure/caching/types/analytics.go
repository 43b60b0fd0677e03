// Package types defines analytics data structures for multi-store event processing.
package types

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
)

// StoreAnalyticsCache holds analytics data for a single store
type StoreAnalyticsCache struct {
	// Site-wide hourly bins, hourKey -> bin
	EventBins map[string]*HourlyEventBin

	// Computed event count summaries, query cache key -> summary
	EventSummaries map[string]*EventSummaryCache

	// Computed dashboard metrics (shorter TTL)
	Dashboard *DashboardCache

	// Cache metadata
	LastFullHour string // Last processed hour key
	LastUpdated  time.Time
	Mu           sync.RWMutex // Exported for access
}

// HourlyEventBin contains event analytics for a specific hour
type HourlyEventBin struct {
	Data       *HourlyEventData `json:"data"`
	ComputedAt time.Time        `json:"computedAt"`
	TTL        time.Duration    `json:"ttl"`
}

// HourlyEventData contains the core hourly event aggregates
type HourlyEventData struct {
	EventCounts    map[string]int  `json:"eventCounts"`    // event name -> count
	UniqueVisitors map[string]bool `json:"uniqueVisitors"` // Set of visitor IDs
	PageViews      int             `json:"pageViews"`
	Sessions       int             `json:"sessions"`
}

// EventSummaryCache contains computed event counts for one query
type EventSummaryCache struct {
	Data         []*analytics.EventCount `json:"data"`
	LastComputed time.Time               `json:"computedAt"`
}

// DashboardCache contains computed dashboard metrics
type DashboardCache struct {
	Data         *DashboardData `json:"data"`
	LastComputed time.Time      `json:"computedAt"`
}

// DashboardData contains high-level dashboard metrics.
type DashboardData struct {
	UniqueVisitors int            `json:"uniqueVisitors"`
	PageViews      int            `json:"pageViews"`
	Sessions       int            `json:"sessions"`
	TopEvents      map[string]int `json:"topEvents"`
}

// RangeCacheStatus describes what a caller must do to satisfy an
// hourly range query against the bin cache.
type RangeCacheStatus struct {
	Action             string   `json:"action"` // "proceed", "refresh_current", "load_range"
	CurrentHourExpired bool     `json:"currentHourExpired"`
	HistoricalComplete bool     `json:"historicalComplete"`
	MissingHours       []string `json:"missingHours"`
}

// FormatHourKey renders a time as the canonical hourly bin key
func FormatHourKey(t time.Time) string {
	return t.UTC().Format("2006-01-02-15")
}

// CurrentHourKey returns the bin key for the hour containing now
func CurrentHourKey(now time.Time) string {
	now = now.UTC()
	return FormatHourKey(time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, time.UTC))
}

// HourKeysForRange returns bin keys between startHoursBack and
// endHoursBack (inclusive of the current hour when endHoursBack is 0),
// newest first.
func HourKeysForRange(startHoursBack, endHoursBack int) []string {
	if startHoursBack < endHoursBack {
		startHoursBack, endHoursBack = endHoursBack, startHoursBack
	}
	now := time.Now().UTC()
	keys := make([]string, 0, startHoursBack-endHoursBack+1)
	for i := endHoursBack; i <= startHoursBack; i++ {
		keys = append(keys, FormatHourKey(now.Add(-time.Duration(i)*time.Hour)))
	}
	return keys
}
