package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Well-known event names the hourly aggregates key off.
const (
	EventPageView     = "page_view"
	EventSessionStart = "session_start"
)

// AnalyticsService ingests custom storefront events and serves
// aggregate queries from hourly in-memory bins backed by the event
// table. Bins for past hours are immutable once computed; only the
// current hour's bin refreshes.
type AnalyticsService struct{}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

// TrackEvent persists one event and folds it into the current hour's
// bin. Bin updates are best-effort; the stored event is the record.
func (s *AnalyticsService) TrackEvent(storeCtx *tenant.Context, event *analytics.CustomEvent) error {
	if event.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if event.ID == "" {
		event.ID = security.GenerateULID()
	}
	if event.Created.IsZero() {
		event.Created = time.Now().UTC()
	}

	if err := storeCtx.EventRepo().Store(storeCtx.StoreID, event); err != nil {
		return fmt.Errorf("failed to track event: %w", err)
	}

	s.updateCurrentBin(storeCtx, event)
	return nil
}

// GetEventCounts returns per-name event counts for a window, cached
// per distinct query until the current hour rolls over.
func (s *AnalyticsService) GetEventCounts(storeCtx *tenant.Context, query analytics.EventQuery) ([]*analytics.EventCount, error) {
	cache := storeCtx.CacheManager
	cacheKey := summaryCacheKey(query)

	if summary, found := cache.GetEventSummary(storeCtx.StoreID, cacheKey); found {
		if time.Since(summary.LastComputed) < config.CurrentHourTTL {
			return summary.Data, nil
		}
	}

	counts, err := storeCtx.EventRepo().CountByName(storeCtx.StoreID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	cache.SetEventSummary(storeCtx.StoreID, cacheKey, &types.EventSummaryCache{
		Data:         counts,
		LastComputed: time.Now().UTC(),
	})
	return counts, nil
}

// GetRecentEvents returns the newest raw events for the admin feed.
func (s *AnalyticsService) GetRecentEvents(storeCtx *tenant.Context, limit int) ([]*analytics.CustomEvent, error) {
	events, err := storeCtx.EventRepo().FindRecent(storeCtx.StoreID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}
	return events, nil
}

// GetDashboard aggregates the last hoursBack hours into the headline
// dashboard numbers, refreshing stale bins from the event table first.
func (s *AnalyticsService) GetDashboard(storeCtx *tenant.Context, hoursBack int) (*types.DashboardData, error) {
	if hoursBack <= 0 {
		hoursBack = 24
	}
	cache := storeCtx.CacheManager

	if dashboard, found := cache.GetDashboardData(storeCtx.StoreID); found {
		if time.Since(dashboard.LastComputed) < config.CurrentHourTTL {
			return dashboard.Data, nil
		}
	}

	hourKeys := types.HourKeysForRange(hoursBack-1, 0)
	status := cache.GetRangeCacheStatus(storeCtx.StoreID, hourKeys)
	if status.Action != "proceed" {
		for _, hourKey := range status.MissingHours {
			if err := s.rebuildBin(storeCtx, hourKey); err != nil {
				return nil, err
			}
		}
	}

	data := &types.DashboardData{TopEvents: make(map[string]int)}
	visitors := make(map[string]bool)
	bins, _ := cache.GetHourlyEventRange(storeCtx.StoreID, hourKeys)
	for _, bin := range bins {
		if bin == nil || bin.Data == nil {
			continue
		}
		data.PageViews += bin.Data.PageViews
		data.Sessions += bin.Data.Sessions
		for name, count := range bin.Data.EventCounts {
			data.TopEvents[name] += count
		}
		for visitorID := range bin.Data.UniqueVisitors {
			visitors[visitorID] = true
		}
	}
	data.UniqueVisitors = len(visitors)

	cache.SetDashboardData(storeCtx.StoreID, &types.DashboardCache{
		Data:         data,
		LastComputed: time.Now().UTC(),
	})
	cache.UpdateLastFullHour(storeCtx.StoreID, types.CurrentHourKey(time.Now()))
	return data, nil
}

// PurgeOldEvents deletes events older than the analytics retention
// window and drops expired bins. Run by the cleanup worker.
func (s *AnalyticsService) PurgeOldEvents(storeCtx *tenant.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-config.AnalyticsBinTTL)
	removed, err := storeCtx.EventRepo().PurgeOlderThan(storeCtx.StoreID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}
	storeCtx.CacheManager.PurgeExpiredBins(storeCtx.StoreID)
	return removed, nil
}

// updateCurrentBin folds one live event into the current hour.
func (s *AnalyticsService) updateCurrentBin(storeCtx *tenant.Context, event *analytics.CustomEvent) {
	cache := storeCtx.CacheManager
	hourKey := types.CurrentHourKey(event.Created)

	bin, found := cache.GetHourlyEventBin(storeCtx.StoreID, hourKey)
	if !found || bin == nil || bin.Data == nil {
		bin = &types.HourlyEventBin{
			Data: &types.HourlyEventData{
				EventCounts:    make(map[string]int),
				UniqueVisitors: make(map[string]bool),
			},
			ComputedAt: time.Now().UTC(),
			TTL:        config.CurrentHourTTL,
		}
	}

	bin.Data.EventCounts[event.Name]++
	switch event.Name {
	case EventPageView:
		bin.Data.PageViews++
	case EventSessionStart:
		bin.Data.Sessions++
	}
	if event.SessionID != "" {
		if session, ok := cache.GetSession(storeCtx.StoreID, event.SessionID); ok {
			bin.Data.UniqueVisitors[session.VisitorID] = true
		}
	}

	cache.SetHourlyEventBin(storeCtx.StoreID, hourKey, bin)
}

// rebuildBin recomputes one hour's aggregates from the event table.
// Visitor identity lives only in the session cache, so rebuilt
// historical bins carry counts but no visitor set.
func (s *AnalyticsService) rebuildBin(storeCtx *tenant.Context, hourKey string) error {
	start, err := time.Parse("2006-01-02-15", hourKey)
	if err != nil {
		return fmt.Errorf("bad hour key %s: %w", hourKey, err)
	}

	counts, err := storeCtx.EventRepo().CountByName(storeCtx.StoreID, analytics.EventQuery{
		Since: start,
		Until: start.Add(time.Hour),
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild bin %s: %w", hourKey, err)
	}

	data := &types.HourlyEventData{
		EventCounts:    make(map[string]int, len(counts)),
		UniqueVisitors: make(map[string]bool),
	}
	for _, c := range counts {
		data.EventCounts[c.Name] = c.Count
	}
	data.PageViews = data.EventCounts[EventPageView]
	data.Sessions = data.EventCounts[EventSessionStart]

	ttl := config.AnalyticsBinTTL
	if hourKey == types.CurrentHourKey(time.Now()) {
		ttl = config.CurrentHourTTL
	}
	storeCtx.CacheManager.SetHourlyEventBin(storeCtx.StoreID, hourKey, &types.HourlyEventBin{
		Data:       data,
		ComputedAt: time.Now().UTC(),
		TTL:        ttl,
	})
	return nil
}

func summaryCacheKey(query analytics.EventQuery) string {
	names := append([]string(nil), query.Names...)
	sort.Strings(names)
	return fmt.Sprintf("%s|%d|%d", strings.Join(names, ","), query.Since.Unix(), query.Until.Unix())
}
