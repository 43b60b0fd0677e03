// Package types defines session and visitor state data structures.
package types

import (
	"sync"
	"time"
)

// StoreSessionCache holds shopper session state for a single store
type StoreSessionCache struct {
	Sessions          map[string]*SessionData  // sessionId -> session data
	Visitors          map[string]*VisitorState // visitorId -> state
	KnownVisitors     map[string]bool          // visitorId -> returning
	VisitorToSessions map[string][]string

	// Cache metadata
	LastLoaded time.Time
	Mu         sync.RWMutex // Exported for access
}

// SessionData represents ephemeral shopper session state. Sessions carry
// the presentation preferences and experiment assignments that keep
// rendering stable across requests.
type SessionData struct {
	SessionID    string            `json:"sessionId"`
	VisitorID    string            `json:"visitorId"`
	Language     string            `json:"language"`
	ViewMode     string            `json:"viewMode"`
	AbVariants   map[string]string `json:"abVariants"` // testId -> variantId
	CreatedAt    time.Time         `json:"createdAt"`
	LastActivity time.Time         `json:"lastActivity"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

// VisitorState represents a visitor's persistent state across sessions
type VisitorState struct {
	VisitorID    string    `json:"visitorId"`
	FirstSeen    time.Time `json:"firstSeen"`
	LastActivity time.Time `json:"lastActivity"`
	SessionCount int       `json:"sessionCount"`
}
