// Package analytics defines custom storefront event entities.
package analytics

import "time"

// CustomEvent is one merchant-defined analytics event captured from
// the storefront (e.g. "add_to_cart", "newsletter_signup").
type CustomEvent struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	SessionID string         `json:"sessionId,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Created   time.Time      `json:"created"`
}

// EventCount aggregates occurrences of one event name over a window.
type EventCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EventQuery bounds a count/aggregate request.
type EventQuery struct {
	Names []string  `json:"names,omitempty"`
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}
