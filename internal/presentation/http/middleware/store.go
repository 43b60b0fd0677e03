// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/monitoring"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/performance"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// StoreMiddleware resolves the store for each request and attaches a
// full store context. Requests that cannot be mapped to a known store
// are rejected before any handler runs.
func StoreMiddleware(storeManager *tenant.Manager, perfTracker *performance.Tracker, monitor *monitoring.StoreMonitor) gin.HandlerFunc {
	logger := storeManager.GetLogger()

	return func(c *gin.Context) {
		start := time.Now()
		marker := perfTracker.StartOperation("middleware_store_resolution", "unknown")
		defer marker.Complete()

		marker.AddMetadata("path", c.Request.URL.Path)
		marker.AddMetadata("method", c.Request.Method)

		storeCtx, err := storeManager.GetContext(c)
		if err != nil {
			logger.Store().Warn("Store resolution failed",
				"error", err.Error(), "host", c.Request.Host, "path", c.Request.URL.Path)
			marker.SetSuccess(false)
			marker.SetError(err)
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			c.Abort()
			return
		}
		marker.StoreID = storeCtx.StoreID

		if !storeCtx.IsActive() {
			err := fmt.Errorf("store %s is %s", storeCtx.StoreID, storeCtx.Status)
			marker.SetSuccess(false)
			marker.SetError(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":  "store is not active",
				"status": storeCtx.Status,
			})
			c.Abort()
			return
		}

		logger.Store().Debug("Store context resolved",
			"storeId", storeCtx.StoreID,
			"duration", time.Since(start),
			"database", storeCtx.GetDatabaseInfo(),
		)
		marker.SetSuccess(true)

		c.Set("store", storeCtx)
		c.Next()

		monitor.RecordRequest(storeCtx.StoreID, time.Since(start), c.Writer.Status() < http.StatusInternalServerError)
	}
}

// GetStoreContext retrieves the store context set by StoreMiddleware.
func GetStoreContext(c *gin.Context) (*tenant.Context, bool) {
	value, exists := c.Get("store")
	if !exists {
		return nil, false
	}
	storeCtx, ok := value.(*tenant.Context)
	return storeCtx, ok
}
