package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/messaging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/monitoring"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// AdminHandlers covers platform health, cache visibility, and the
// live activity websocket for the admin dashboard.
type AdminHandlers struct {
	cacheManager     *manager.Manager
	adminBroadcaster *messaging.AdminBroadcaster
	fragments        *services.FragmentService
	auth             *services.AuthService
	monitor          *monitoring.StoreMonitor
	logger           *logging.ChanneledLogger
}

// NewAdminHandlers creates a new admin handlers instance.
func NewAdminHandlers(cacheManager *manager.Manager, adminBroadcaster *messaging.AdminBroadcaster, fragments *services.FragmentService, auth *services.AuthService, monitor *monitoring.StoreMonitor, logger *logging.ChanneledLogger) *AdminHandlers {
	return &AdminHandlers{cacheManager: cacheManager, adminBroadcaster: adminBroadcaster, fragments: fragments, auth: auth, monitor: monitor, logger: logger}
}

// GetHealth handles GET /api/v1/health
func (h *AdminHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"caches": h.cacheManager.Health(),
		"system": h.monitor.GetSystemStats(),
	})
}

// GetCacheStats handles GET /api/v1/admin/cache/stats
func (h *AdminHandlers) GetCacheStats(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cache":   h.cacheManager.GetStoreStats(storeCtx.StoreID),
		"metrics": h.monitor.GetMetrics(storeCtx.StoreID),
	})
}

// InvalidateFragments handles POST /api/v1/admin/cache/invalidate
func (h *AdminHandlers) InvalidateFragments(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	h.fragments.InvalidateAll(storeCtx)
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

// StreamActivity handles GET /api/v1/admin/activity, upgrading to a
// websocket that pushes shopper activity snapshots on each tick.
// Browsers cannot set headers on websocket upgrades, so the auth
// token arrives as a query parameter.
func (h *AdminHandlers) StreamActivity(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if _, err := h.auth.Verify(storeCtx, c.Query("token")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Store().Error("Websocket upgrade failed", "error", err, "storeId", storeCtx.StoreID)
		return
	}

	client := &messaging.AdminClient{
		Conn:    conn,
		StoreID: storeCtx.StoreID,
		Send:    make(chan []byte, 8),
	}
	h.adminBroadcaster.Register(client)

	go h.writePump(client)
	h.readPump(client)
}

// writePump drains the client's send channel onto the websocket.
func (h *AdminHandlers) writePump(client *messaging.AdminClient) {
	defer client.Conn.Close()
	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump blocks until the client disconnects so the handler can
// unregister it. Inbound messages are discarded.
func (h *AdminHandlers) readPump(client *messaging.AdminClient) {
	defer func() {
		h.adminBroadcaster.Unregister(client)
		client.Conn.Close()
	}()
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
