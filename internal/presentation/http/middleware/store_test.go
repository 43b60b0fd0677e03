package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/monitoring"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/performance"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// seedStoreHome points the registry and store config loaders at a
// temporary home directory holding one active sqlite-backed store.
func seedStoreHome(t *testing.T, storeID, status string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ENABLE_MULTI_STORE", "true")

	registryDir := filepath.Join(home, "dainostore-server", "config", "dainostore")
	require.NoError(t, os.MkdirAll(registryDir, 0755))

	registry := tenant.StoreRegistry{
		Stores: map[string]tenant.StoreInfo{
			storeID: {
				StoreID:      storeID,
				Domains:      []string{"shop.example.com"},
				Status:       status,
				DatabaseType: "sqlite3",
			},
		},
	}
	data, err := json.Marshal(registry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(registryDir, "stores.json"), data, 0644))

	storeDir := filepath.Join(home, "dainostore-server", "config", storeID)
	require.NoError(t, os.MkdirAll(storeDir, 0755))
	env := map[string]any{
		"storeId":      storeID,
		"status":       status,
		"databaseType": "sqlite3",
		"JWT_SECRET":   "test-secret",
	}
	data, err = json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, "env.json"), data, 0644))
}

func newStoreTestRouter(t *testing.T) (*gin.Engine, *performance.Tracker, *monitoring.StoreMonitor) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{DefaultLevel: slog.LevelError})
	require.NoError(t, err)

	storeManager := tenant.NewManager(logger)
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())
	monitor := monitoring.NewStoreMonitor()

	r := gin.New()
	r.Use(StoreMiddleware(storeManager, perfTracker, monitor))
	r.GET("/probe", func(c *gin.Context) {
		storeCtx, exists := GetStoreContext(c)
		require.True(t, exists)
		c.JSON(http.StatusOK, gin.H{"storeId": storeCtx.StoreID})
	})
	return r, perfTracker, monitor
}

func TestStoreMiddlewareAttachesContextAndRecordsMetrics(t *testing.T) {
	seedStoreHome(t, "store-1", "active")
	r, perfTracker, monitor := newStoreTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Store-ID", "store-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store-1")

	markers := perfTracker.GetMetrics("store-1")
	require.NotEmpty(t, markers)
	assert.Equal(t, "store-1", markers[0].StoreID)

	metrics := monitor.GetMetrics("store-1")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(0), metrics.FailedRequests)
}

func TestStoreMiddlewareRejectsInactiveStore(t *testing.T) {
	seedStoreHome(t, "store-1", "inactive")
	r, _, monitor := newStoreTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Store-ID", "store-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Nil(t, monitor.GetMetrics("store-1"))
}

func TestStoreMiddlewareRejectsUnknownStore(t *testing.T) {
	seedStoreHome(t, "store-1", "active")
	r, _, _ := newStoreTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Store-ID", "no-such-store")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
