// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// SessionService manages ephemeral shopper sessions and visitor state.
type SessionService struct{}

// NewSessionService creates a new session service.
func NewSessionService() *SessionService {
	return &SessionService{}
}

// GetOrCreate returns the session for sessionID, creating a fresh one
// when it is missing or expired. New visitors get a generated visitor ID.
func (s *SessionService) GetOrCreate(storeCtx *tenant.Context, sessionID, visitorID string) *types.SessionData {
	cache := storeCtx.CacheManager
	storeID := storeCtx.StoreID

	if sessionID != "" {
		if session, found := cache.GetSession(storeID, sessionID); found {
			return session
		}
	}

	if visitorID == "" {
		visitorID = security.GenerateULID()
	}

	now := time.Now().UTC()
	session := &types.SessionData{
		SessionID:    security.GenerateULID(),
		VisitorID:    visitorID,
		ViewMode:     rendering.ViewModeGrid,
		AbVariants:   make(map[string]string),
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(config.SessionTTL),
	}
	cache.SetSession(storeID, session)

	s.trackVisitor(storeCtx, visitorID, now)
	return session
}

// Touch extends a session's activity window.
func (s *SessionService) Touch(storeCtx *tenant.Context, session *types.SessionData) {
	now := time.Now().UTC()
	session.LastActivity = now
	session.ExpiresAt = now.Add(config.SessionTTL)
	storeCtx.CacheManager.SetSession(storeCtx.StoreID, session)
}

// SetPreferences updates a session's language and view mode together,
// since both select the fragment variant served to the shopper.
func (s *SessionService) SetPreferences(storeCtx *tenant.Context, session *types.SessionData, language, viewMode string) {
	if language != "" {
		session.Language = language
	}
	if viewMode == rendering.ViewModeGrid || viewMode == rendering.ViewModeList {
		session.ViewMode = viewMode
	}
	s.Touch(storeCtx, session)
}

// IsReturningVisitor reports whether the visitor has been seen in a
// previous session.
func (s *SessionService) IsReturningVisitor(storeCtx *tenant.Context, visitorID string) bool {
	return storeCtx.CacheManager.IsKnownVisitor(storeCtx.StoreID, visitorID)
}

func (s *SessionService) trackVisitor(storeCtx *tenant.Context, visitorID string, now time.Time) {
	cache := storeCtx.CacheManager
	storeID := storeCtx.StoreID

	state, found := cache.GetVisitorState(storeID, visitorID)
	if !found {
		cache.SetVisitorState(storeID, &types.VisitorState{
			VisitorID:    visitorID,
			FirstSeen:    now,
			LastActivity: now,
			SessionCount: 1,
		})
		cache.SetKnownVisitor(storeID, visitorID, false)
		return
	}

	state.LastActivity = now
	state.SessionCount++
	cache.SetVisitorState(storeID, state)
	// A second session marks the visitor as returning.
	cache.SetKnownVisitor(storeID, visitorID, true)
}
