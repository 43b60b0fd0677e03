package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequestTracksErrorRate(t *testing.T) {
	sm := NewStoreMonitor()

	sm.RecordRequest("store-1", 10*time.Millisecond, true)
	sm.RecordRequest("store-1", 10*time.Millisecond, true)
	sm.RecordRequest("store-1", 10*time.Millisecond, false)

	metrics := sm.GetMetrics("store-1")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(3), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.FailedRequests)
	assert.InDelta(t, 1.0/3.0, metrics.ErrorRate, 0.001)
}

func TestHealthyUnderThresholds(t *testing.T) {
	sm := NewStoreMonitor()

	for i := 0; i < 10; i++ {
		sm.RecordRequest("store-1", 20*time.Millisecond, true)
	}

	assert.Equal(t, HealthHealthy, sm.GetMetrics("store-1").HealthStatus)
}

func TestCriticalErrorRateDegradesHealth(t *testing.T) {
	sm := NewStoreMonitor()

	for i := 0; i < 10; i++ {
		sm.RecordRequest("store-1", 20*time.Millisecond, i%2 == 0)
	}

	metrics := sm.GetMetrics("store-1")
	assert.Equal(t, HealthUnhealthy, metrics.HealthStatus)
	assert.NotZero(t, metrics.AlertCount)
}

func TestCacheHitRatio(t *testing.T) {
	sm := NewStoreMonitor()

	for i := 0; i < 8; i++ {
		sm.RecordCacheOperation("store-1", true)
	}
	sm.RecordCacheOperation("store-1", false)
	sm.RecordCacheOperation("store-1", false)

	assert.InDelta(t, 0.8, sm.GetMetrics("store-1").CacheHitRatio, 0.001)
}

func TestBusinessOperationCounters(t *testing.T) {
	sm := NewStoreMonitor()

	sm.RecordBusinessOperation("store-1", "fragment_render")
	sm.RecordBusinessOperation("store-1", "fragment_render")
	sm.RecordBusinessOperation("store-1", "event_ingested")

	metrics := sm.GetMetrics("store-1")
	assert.Equal(t, int64(2), metrics.FragmentRenders)
	assert.Equal(t, int64(1), metrics.EventsIngested)
}

func TestAlertCallbackFires(t *testing.T) {
	sm := NewStoreMonitor()

	alerts := make(chan *StoreAlert, 1)
	sm.AddAlertCallback(func(alert *StoreAlert) {
		alerts <- alert
	})

	for i := 0; i < 10; i++ {
		sm.RecordRequest("store-1", 20*time.Millisecond, false)
	}

	select {
	case alert := <-alerts:
		assert.Equal(t, "store-1", alert.StoreID)
	case <-time.After(time.Second):
		t.Fatal("expected an alert")
	}
}

func TestGetAllMetricsReturnsCopies(t *testing.T) {
	sm := NewStoreMonitor()
	sm.RecordRequest("store-1", time.Millisecond, true)

	all := sm.GetAllMetrics()
	all["store-1"].TotalRequests = 999

	assert.Equal(t, int64(1), sm.GetMetrics("store-1").TotalRequests)
}

func TestSystemStats(t *testing.T) {
	sm := NewStoreMonitor()
	sm.RecordRequest("store-a", time.Millisecond, true)
	sm.RecordRequest("store-b", time.Millisecond, true)

	stats := sm.GetSystemStats()
	assert.Equal(t, 2, stats["storeCount"])
	assert.Equal(t, int64(2), stats["totalRequests"])
}
