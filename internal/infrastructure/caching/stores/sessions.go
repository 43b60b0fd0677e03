package stores

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// SessionsStore implements shopper session caching with store isolation
type SessionsStore struct {
	storeCaches map[string]*types.StoreSessionCache
	mu          sync.RWMutex
}

// NewSessionsStore creates a new sessions cache store
func NewSessionsStore() *SessionsStore {
	return &SessionsStore{
		storeCaches: make(map[string]*types.StoreSessionCache),
	}
}

// InitializeStore creates cache structures for a store
func (ss *SessionsStore) InitializeStore(storeID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.storeCaches[storeID] == nil {
		ss.storeCaches[storeID] = &types.StoreSessionCache{
			Sessions:          make(map[string]*types.SessionData),
			Visitors:          make(map[string]*types.VisitorState),
			KnownVisitors:     make(map[string]bool),
			VisitorToSessions: make(map[string][]string),
			LastLoaded:        time.Now().UTC(),
		}
	}
}

// GetStoreCache safely retrieves a store's session cache
func (ss *SessionsStore) GetStoreCache(storeID string) (*types.StoreSessionCache, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	cache, exists := ss.storeCaches[storeID]
	return cache, exists
}

func (ss *SessionsStore) ensureStoreCache(storeID string) *types.StoreSessionCache {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		ss.InitializeStore(storeID)
		cache, _ = ss.GetStoreCache(storeID)
	}
	return cache
}

// =============================================================================
// Session Operations
// =============================================================================

// GetSession retrieves a session, treating expired sessions as misses
func (ss *SessionsStore) GetSession(storeID, sessionID string) (*types.SessionData, bool) {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	session, exists := cache.Sessions[sessionID]
	if !exists {
		return nil, false
	}
	if !session.ExpiresAt.IsZero() && time.Now().UTC().After(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

// SetSession stores a session and links it to its visitor
func (ss *SessionsStore) SetSession(storeID string, sessionData *types.SessionData) {
	cache := ss.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	// Enforce per-store session cap by evicting the stalest session
	if len(cache.Sessions) >= config.MaxSessionsPerStore {
		ss.evictOldestSession(cache)
	}

	if sessionData.ExpiresAt.IsZero() {
		sessionData.ExpiresAt = time.Now().UTC().Add(config.SessionTTL)
	}
	cache.Sessions[sessionData.SessionID] = sessionData

	if sessionData.VisitorID != "" {
		found := false
		for _, existing := range cache.VisitorToSessions[sessionData.VisitorID] {
			if existing == sessionData.SessionID {
				found = true
				break
			}
		}
		if !found {
			cache.VisitorToSessions[sessionData.VisitorID] = append(cache.VisitorToSessions[sessionData.VisitorID], sessionData.SessionID)
		}
	}
}

// evictOldestSession removes the least recently active session. Caller holds the lock.
func (ss *SessionsStore) evictOldestSession(cache *types.StoreSessionCache) {
	var oldestID string
	var oldestActivity time.Time
	for id, session := range cache.Sessions {
		if oldestID == "" || session.LastActivity.Before(oldestActivity) {
			oldestID = id
			oldestActivity = session.LastActivity
		}
	}
	if oldestID != "" {
		ss.unlinkSession(cache, oldestID)
		delete(cache.Sessions, oldestID)
	}
}

func (ss *SessionsStore) unlinkSession(cache *types.StoreSessionCache, sessionID string) {
	session, exists := cache.Sessions[sessionID]
	if !exists || session.VisitorID == "" {
		return
	}
	filtered := make([]string, 0)
	for _, existing := range cache.VisitorToSessions[session.VisitorID] {
		if existing != sessionID {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) == 0 {
		delete(cache.VisitorToSessions, session.VisitorID)
	} else {
		cache.VisitorToSessions[session.VisitorID] = filtered
	}
}

// RemoveSession deletes a session and its visitor link
func (ss *SessionsStore) RemoveSession(storeID, sessionID string) {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	ss.unlinkSession(cache, sessionID)
	delete(cache.Sessions, sessionID)
}

// GetSessionsByVisitor returns all session IDs for a visitor
func (ss *SessionsStore) GetSessionsByVisitor(storeID, visitorID string) []string {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return []string{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	sessions := cache.VisitorToSessions[visitorID]
	result := make([]string, len(sessions))
	copy(result, sessions)
	return result
}

// =============================================================================
// Visitor Operations
// =============================================================================

func (ss *SessionsStore) GetVisitorState(storeID, visitorID string) (*types.VisitorState, bool) {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	state, exists := cache.Visitors[visitorID]
	return state, exists
}

func (ss *SessionsStore) SetVisitorState(storeID string, state *types.VisitorState) {
	cache := ss.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Visitors[state.VisitorID] = state
}

func (ss *SessionsStore) IsKnownVisitor(storeID, visitorID string) bool {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	return cache.KnownVisitors[visitorID]
}

func (ss *SessionsStore) SetKnownVisitor(storeID, visitorID string, isKnown bool) {
	cache := ss.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.KnownVisitors[visitorID] = isKnown
}

// LoadKnownVisitors bulk-loads visitor knowledge, used during cache warming
func (ss *SessionsStore) LoadKnownVisitors(storeID string, visitors map[string]bool) {
	cache := ss.ensureStoreCache(storeID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	for visitorID, isKnown := range visitors {
		cache.KnownVisitors[visitorID] = isKnown
	}
	cache.LastLoaded = time.Now().UTC()
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// InvalidateSessionCache clears all session state for a store
func (ss *SessionsStore) InvalidateSessionCache(storeID string) {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Sessions = make(map[string]*types.SessionData)
	cache.Visitors = make(map[string]*types.VisitorState)
	cache.KnownVisitors = make(map[string]bool)
	cache.VisitorToSessions = make(map[string][]string)
	cache.LastLoaded = time.Now().UTC()
}

// GetAllSessionIDs returns all session IDs for a store
func (ss *SessionsStore) GetAllSessionIDs(storeID string) []string {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return []string{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	ids := make([]string, 0, len(cache.Sessions))
	for id := range cache.Sessions {
		ids = append(ids, id)
	}
	return ids
}

// GetAllVisitorIDs returns all visitor IDs for a store
func (ss *SessionsStore) GetAllVisitorIDs(storeID string) []string {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return []string{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	ids := make([]string, 0, len(cache.Visitors))
	for id := range cache.Visitors {
		ids = append(ids, id)
	}
	return ids
}

// PurgeExpiredSessions removes sessions past their TTL
func (ss *SessionsStore) PurgeExpiredSessions(storeID string) int {
	cache, exists := ss.GetStoreCache(storeID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	now := time.Now().UTC()
	expired := make([]string, 0)
	for id, session := range cache.Sessions {
		if !session.ExpiresAt.IsZero() && now.After(session.ExpiresAt) {
			expired = append(expired, id)
		}
	}

	for _, id := range expired {
		ss.unlinkSession(cache, id)
		delete(cache.Sessions, id)
	}
	return len(expired)
}
