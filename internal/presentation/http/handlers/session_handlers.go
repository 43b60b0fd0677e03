package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/messaging"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SessionHandlers manages shopper sessions and the live-update stream.
type SessionHandlers struct {
	sessions    *services.SessionService
	broadcaster messaging.Broadcaster
}

// NewSessionHandlers creates a new session handlers instance.
func NewSessionHandlers(sessions *services.SessionService, broadcaster messaging.Broadcaster) *SessionHandlers {
	return &SessionHandlers{sessions: sessions, broadcaster: broadcaster}
}

// CreateSession handles POST /api/v1/session
func (h *SessionHandlers) CreateSession(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		VisitorID string `json:"visitorId"`
	}
	_ = c.ShouldBindJSON(&req)

	session := h.sessions.GetOrCreate(storeCtx, c.GetHeader(SessionHeader), req.VisitorID)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"visitorId": session.VisitorID,
		"language":  session.Language,
		"viewMode":  session.ViewMode,
		"returning": h.sessions.IsReturningVisitor(storeCtx, session.VisitorID),
	})
}

// UpdatePreferences handles PUT /api/v1/session/preferences
func (h *SessionHandlers) UpdatePreferences(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Language string `json:"language"`
		ViewMode string `json:"viewMode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := h.sessions.GetOrCreate(storeCtx, c.GetHeader(SessionHeader), "")
	h.sessions.SetPreferences(storeCtx, session, req.Language, req.ViewMode)

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"language":  session.Language,
		"viewMode":  session.ViewMode,
	})
}

// Subscribe handles GET /api/v1/updates, a server-sent event stream
// that pushes layout and catalog changes to open storefront tabs.
func (h *SessionHandlers) Subscribe(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = c.Query("sessionId")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		return
	}

	ch := h.broadcaster.AddClientWithSession(storeCtx.StoreID, sessionID)
	defer h.broadcaster.RemoveClientWithSession(ch, storeCtx.StoreID, sessionID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	fmt.Fprint(c.Writer, "event: connected\ndata: {}\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-ch:
			if !ok {
				return false
			}
			fmt.Fprint(w, message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
