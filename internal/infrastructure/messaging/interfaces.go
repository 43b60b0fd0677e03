// Package messaging defines interfaces for real-time communication.
package messaging

// Broadcaster defines the interface for managing storefront SSE client
// connections and pushing live update events.
type Broadcaster interface {
	AddClientWithSession(storeID, sessionID string) chan string
	RemoveClientWithSession(ch chan string, storeID, sessionID string)
	GetSessionConnectionCount(storeID, sessionID string) int
	BroadcastLayoutUpdate(storeID, pageType, layoutID string)
	BroadcastCatalogUpdate(storeID, entityKind, entityID string)
	HasActiveSessions(storeID string) bool
}
