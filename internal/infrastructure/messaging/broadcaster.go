// Package messaging provides the concrete implementation of the SSE broadcaster.
package messaging

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
)

// SSEBroadcaster manages store-scoped, session-specific SSE
// connections. Storefronts subscribe after first paint and swap
// fragments in place when a layout or catalog entity changes.
type SSEBroadcaster struct {
	storeSessions map[string]map[string][]chan string // storeId -> sessionId -> []channels
	mu            sync.Mutex
	logger        *logging.ChanneledLogger
}

var (
	globalBroadcaster *SSEBroadcaster
	once              sync.Once
)

// NewSSEBroadcaster creates the singleton SSEBroadcaster instance.
func NewSSEBroadcaster(logger *logging.ChanneledLogger) *SSEBroadcaster {
	once.Do(func() {
		globalBroadcaster = &SSEBroadcaster{
			storeSessions: make(map[string]map[string][]chan string),
			logger:        logger,
		}
	})
	return globalBroadcaster
}

// AddClientWithSession registers a new SSE client with store and session isolation.
func (b *SSEBroadcaster) AddClientWithSession(storeID, sessionID string) chan string {
	ch := make(chan string, 10)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.storeSessions[storeID] == nil {
		b.storeSessions[storeID] = make(map[string][]chan string)
	}
	b.storeSessions[storeID][sessionID] = append(b.storeSessions[storeID][sessionID], ch)

	b.logger.Store().Debug("SSE client registered", "storeId", storeID, "sessionId", sessionID)
	return ch
}

// RemoveClientWithSession removes an SSE client with store and session context.
func (b *SSEBroadcaster) RemoveClientWithSession(ch chan string, storeID, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if storeSessions, exists := b.storeSessions[storeID]; exists {
		if sessionClients, exists := storeSessions[sessionID]; exists {
			newClients := make([]chan string, 0, len(sessionClients)-1)
			for _, client := range sessionClients {
				if client != ch {
					newClients = append(newClients, client)
				}
			}
			storeSessions[sessionID] = newClients

			if len(storeSessions[sessionID]) == 0 {
				delete(storeSessions, sessionID)
			}
		}

		if len(storeSessions) == 0 {
			delete(b.storeSessions, storeID)
		}
	}
	b.logger.Store().Debug("SSE client unregistered", "storeId", storeID, "sessionId", sessionID)
}

// GetSessionConnectionCount returns the connection count for a specific store session.
func (b *SSEBroadcaster) GetSessionConnectionCount(storeID, sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if storeSessions, exists := b.storeSessions[storeID]; exists {
		return len(storeSessions[sessionID])
	}
	return 0
}

// BroadcastLayoutUpdate notifies every connected session of the store
// that a page-type layout changed and its fragment should be refetched.
func (b *SSEBroadcaster) BroadcastLayoutUpdate(storeID, pageType, layoutID string) {
	payload, _ := json.Marshal(map[string]string{
		"pageType": pageType,
		"layoutId": layoutID,
	})
	b.broadcastToStore(storeID, fmt.Sprintf("event: layout_updated\ndata: %s\n\n", payload))
}

// BroadcastCatalogUpdate notifies every connected session of the store
// that a catalog entity changed.
func (b *SSEBroadcaster) BroadcastCatalogUpdate(storeID, entityKind, entityID string) {
	payload, _ := json.Marshal(map[string]string{
		"kind": entityKind,
		"id":   entityID,
	})
	b.broadcastToStore(storeID, fmt.Sprintf("event: catalog_updated\ndata: %s\n\n", payload))
}

// HasActiveSessions checks whether any storefront is currently listening.
func (b *SSEBroadcaster) HasActiveSessions(storeID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if storeSessions, exists := b.storeSessions[storeID]; exists {
		return len(storeSessions) > 0
	}
	return false
}

func (b *SSEBroadcaster) broadcastToStore(storeID, message string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Store().Error("Panic recovered while broadcasting", "error", r, "storeId", storeID)
		}
	}()

	b.logger.Store().Debug("Broadcasting to store",
		"message", strings.ReplaceAll(message, "\n", "\\n"), "storeId", storeID)

	b.mu.Lock()
	defer b.mu.Unlock()

	for sessionID, sessionClients := range b.storeSessions[storeID] {
		for _, ch := range sessionClients {
			select {
			case ch <- message:
			default:
				b.logger.Store().Warn("SSE channel full, message dropped", "storeId", storeID, "sessionId", sessionID)
			}
		}
	}
}
