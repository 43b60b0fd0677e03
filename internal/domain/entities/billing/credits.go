// Package billing defines the service-credit domain entities.
package billing

import "time"

// CreditCost is the configured credit price of one metered operation.
type CreditCost struct {
	Operation   string `json:"operation"` // e.g. "quick_translate", "seo_generate"
	Credits     int    `json:"credits"`
	Description string `json:"description,omitempty"`
}

// CreditBalance is a store's current spendable credits.
type CreditBalance struct {
	StoreID string    `json:"storeId"`
	Credits int       `json:"credits"`
	Updated time.Time `json:"updated"`
}

// LedgerEntry records one credit movement; positive deltas are grants,
// negative deltas are spends.
type LedgerEntry struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Operation string    `json:"operation"`
	Delta     int       `json:"delta"`
	Balance   int       `json:"balance"` // balance after this entry
	Note      string    `json:"note,omitempty"`
	Created   time.Time `json:"created"`
}
