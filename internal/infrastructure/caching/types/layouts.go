package types

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// StoreLayoutCache holds slot layouts for a single store
type StoreLayoutCache struct {
	Layouts             map[string]*rendering.SlotLayout // id -> layout
	PublishedByPageType map[string]string                // page type -> published layout id
	AllLayoutIDs        []string

	LastUpdated time.Time
	Mu          sync.RWMutex // Exported for access
}
