// Package types defines configuration cache data structures
package types

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
)

// StoreConfigCache stores settings, languages, and billing state for a store
type StoreConfigCache struct {
	// Key-value settings from the settings table
	Settings            map[string]any `json:"settings"`
	SettingsLastUpdated time.Time      `json:"settingsLastUpdated"`

	// Language configuration
	Languages       []*i18n.Language `json:"languages"`
	DefaultLanguage string           `json:"defaultLanguage"`

	// UI label translations, language -> key -> label
	UILabels            map[string]map[string]string `json:"uiLabels"`
	UILabelsLastUpdated map[string]time.Time         `json:"uiLabelsLastUpdated"`

	// Credit balance snapshot, short TTL so spends stay honest
	CreditBalance          *billing.CreditBalance `json:"creditBalance"`
	CreditBalanceFetchedAt time.Time              `json:"creditBalanceFetchedAt"`
	CreditCosts            map[string]int         `json:"creditCosts"` // operation -> cost

	// Cache metadata
	LastUpdated time.Time    `json:"lastUpdated"`
	Mu          sync.RWMutex `json:"-"`
}
