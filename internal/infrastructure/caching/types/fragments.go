package types

import (
	"sync"
	"time"
)

// FragmentVariant identifies one rendered form of a layout. The same
// layout renders differently per view mode, language, and filter state.
type FragmentVariant struct {
	PageType  string `json:"pageType"`
	ViewMode  string `json:"viewMode"`  // "grid" or "list"
	Language  string `json:"language"`  // ISO 639-1 code
	QueryHash string `json:"queryHash"` // hash of filters/sort/page, empty for unfiltered
}

// Fragment represents cached rendered HTML with dependencies
type Fragment struct {
	HTML        string          `json:"html"`
	LayoutID    string          `json:"layoutId"`
	Variant     FragmentVariant `json:"variant"`
	DependsOn   []string        `json:"dependsOn"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// StoreFragmentCache holds rendered HTML fragment cache for a single store
type StoreFragmentCache struct {
	Fragments map[string]*Fragment // "layoutId:variant" -> fragment
	Deps      map[string][]string  // entityId -> []cacheKeys
	Mu        sync.RWMutex         // Exported for access
}
