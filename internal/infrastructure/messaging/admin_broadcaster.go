package messaging

import (
	"encoding/json"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// AdminClient represents a single connected admin dashboard client.
type AdminClient struct {
	Conn    *websocket.Conn
	StoreID string
	Send    chan []byte
}

// ShopperState represents the state of a single shopper session for
// the admin activity visualization.
type ShopperState struct {
	IsReturning  bool      `json:"isReturning"`
	HasVariants  bool      `json:"hasVariants"`
	LastActivity time.Time `json:"lastActivity"`
}

// ActivityPayload is the complete data structure sent to the admin
// dashboard on each tick.
type ActivityPayload struct {
	ShopperStates  []ShopperState `json:"shopperStates"`
	DisplayMode    string         `json:"displayMode"` // "1:1" or "PROPORTIONAL"
	TotalCount     int            `json:"totalCount"`
	ReturningCount int            `json:"returningCount"`
	ActiveCount    int            `json:"activeCount"`
	DormantCount   int            `json:"dormantCount"`
	ProductCount   int            `json:"productCount"`
	FragmentCount  int            `json:"fragmentCount"`
}

// shopperStats holds the raw counts for proportional calculation.
type shopperStats struct{ Total, Returning, Active, Dormant int }

// AdminBroadcaster manages all connected admin dashboard clients and
// broadcasts live activity data.
type AdminBroadcaster struct {
	storeClients map[string]map[*AdminClient]bool
	register     chan *AdminClient
	unregister   chan *AdminClient
	cacheManager *manager.Manager
	storeManager *tenant.Manager
	mu           sync.RWMutex
}

// NewAdminBroadcaster creates a new broadcaster instance.
func NewAdminBroadcaster(sm *tenant.Manager, cm *manager.Manager) *AdminBroadcaster {
	return &AdminBroadcaster{
		storeClients: make(map[string]map[*AdminClient]bool),
		register:     make(chan *AdminClient),
		unregister:   make(chan *AdminClient),
		cacheManager: cm,
		storeManager: sm,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *AdminBroadcaster) Run() {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			if _, ok := b.storeClients[client.StoreID]; !ok {
				b.storeClients[client.StoreID] = make(map[*AdminClient]bool)
			}
			b.storeClients[client.StoreID][client] = true
			log.Printf("Admin client registered for store: %s", client.StoreID)
			b.mu.Unlock()

		case client := <-b.unregister:
			b.mu.Lock()
			if clients, ok := b.storeClients[client.StoreID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(b.storeClients, client.StoreID)
					}
				}
			}
			log.Printf("Admin client unregistered for store: %s", client.StoreID)
			b.mu.Unlock()

		case <-ticker.C:
			b.broadcastActivity()
		}
	}
}

// Register queues a client for registration.
func (b *AdminBroadcaster) Register(client *AdminClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *AdminBroadcaster) Unregister(client *AdminClient) {
	b.unregister <- client
}

// broadcastActivity gathers and sends activity state for all stores
// with connected admin clients.
func (b *AdminBroadcaster) broadcastActivity() {
	b.mu.RLock()
	storeIDs := make([]string, 0, len(b.storeClients))
	for storeID := range b.storeClients {
		storeIDs = append(storeIDs, storeID)
	}
	b.mu.RUnlock()

	for _, storeID := range storeIDs {
		fullStateList := b.getShopperStates(storeID)
		payload := b.preparePayload(storeID, fullStateList)

		message, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Error marshaling activity state for store %s: %v", storeID, err)
			continue
		}

		b.mu.RLock()
		if clients, ok := b.storeClients[storeID]; ok {
			for client := range clients {
				select {
				case client.Send <- message:
				default:
				}
			}
		}
		b.mu.RUnlock()
	}
}

// getShopperStates is the core logic for calculating the state of each
// shopper session from the session cache.
func (b *AdminBroadcaster) getShopperStates(storeID string) []ShopperState {
	sessionCache, found := b.cacheManager.GetStoreSessionCache(storeID)
	if !found {
		return []ShopperState{}
	}

	sessionCache.Mu.RLock()
	defer sessionCache.Mu.RUnlock()

	states := make([]ShopperState, 0, len(sessionCache.Sessions))
	for _, session := range sessionCache.Sessions {
		states = append(states, ShopperState{
			IsReturning:  sessionCache.KnownVisitors[session.VisitorID],
			HasVariants:  len(session.AbVariants) > 0,
			LastActivity: session.LastActivity,
		})
	}
	return states
}

// preparePayload handles the logic for proportional scaling.
func (b *AdminBroadcaster) preparePayload(storeID string, fullStateList []ShopperState) ActivityPayload {
	stats := b.calculateStats(fullStateList)
	var displayStates []ShopperState
	displayMode := "1:1"

	// Switch to proportional mode if session count is high
	if stats.Total > 200 {
		displayMode = "PROPORTIONAL"
		displayStates = b.calculateProportionalStates(fullStateList, 200)
	} else {
		displayStates = fullStateList
	}

	cacheStats := b.cacheManager.GetStoreStats(storeID)

	return ActivityPayload{
		ShopperStates:  displayStates,
		DisplayMode:    displayMode,
		TotalCount:     stats.Total,
		ReturningCount: stats.Returning,
		ActiveCount:    stats.Active,
		DormantCount:   stats.Dormant,
		ProductCount:   cacheStats.Products,
		FragmentCount:  cacheStats.Fragments,
	}
}

func (b *AdminBroadcaster) calculateStats(fullStateList []ShopperState) (stats shopperStats) {
	stats.Total = len(fullStateList)
	now := time.Now()
	for _, s := range fullStateList {
		if s.IsReturning {
			stats.Returning++
		}
		if now.Sub(s.LastActivity).Minutes() <= 45 {
			stats.Active++
		} else {
			stats.Dormant++
		}
	}
	return stats
}

// calculateProportionalStates downsamples the full session list to a
// fixed display count while preserving the mix of visitor categories
// and activity tiers.
func (b *AdminBroadcaster) calculateProportionalStates(fullStateList []ShopperState, displayCount int) []ShopperState {
	total := len(fullStateList)
	if total == 0 {
		return []ShopperState{}
	}

	now := time.Now()
	// Representative timestamps for each activity tier to trigger the
	// correct styling on the frontend.
	timeTiers := map[string]time.Time{
		"ultra":   now,
		"bright":  now.Add(-10 * time.Minute),
		"medium":  now.Add(-20 * time.Minute),
		"light":   now.Add(-40 * time.Minute),
		"dormant": now.Add(-60 * time.Minute),
	}

	counts := make(map[string]int)
	for _, s := range fullStateList {
		minutesSince := now.Sub(s.LastActivity).Minutes()

		var tier string
		if minutesSince < 1 {
			tier = "ultra"
		} else if minutesSince <= 15 {
			tier = "bright"
		} else if minutesSince <= 30 {
			tier = "medium"
		} else if minutesSince <= 45 {
			tier = "light"
		} else {
			tier = "dormant"
		}

		var categoryPrefix string
		if s.IsReturning {
			categoryPrefix = "returning"
		} else if s.HasVariants {
			categoryPrefix = "anonVariants"
		} else {
			categoryPrefix = "anon"
		}
		counts[categoryPrefix+"_"+tier]++
	}

	proportionalStates := make([]ShopperState, 0, displayCount)
	categoryOrder := []string{ // Order for consistent display
		"returning_ultra", "returning_bright", "returning_medium", "returning_light", "returning_dormant",
		"anonVariants_ultra", "anonVariants_bright", "anonVariants_medium", "anonVariants_light", "anonVariants_dormant",
		"anon_ultra", "anon_bright", "anon_medium", "anon_light", "anon_dormant",
	}

	repeatState := func(num int, state ShopperState) {
		for i := 0; i < num; i++ {
			proportionalStates = append(proportionalStates, state)
		}
	}

	for _, category := range categoryOrder {
		categoryCount := counts[category]
		if categoryCount == 0 {
			continue
		}

		var template ShopperState
		switch {
		case strings.HasPrefix(category, "returning"):
			template.IsReturning = true
		case strings.HasPrefix(category, "anonVariants"):
			template.HasVariants = true
		}

		tier := strings.Split(category, "_")[1]
		template.LastActivity = timeTiers[tier]

		numBlocks := int(math.Round((float64(categoryCount) / float64(total)) * float64(displayCount)))
		if numBlocks > 0 {
			repeatState(numBlocks, template)
		}
	}

	// Group types for a stable visual mix, then adjust for rounding
	// errors to hit the exact display count.
	sort.SliceStable(proportionalStates, func(i, j int) bool {
		if proportionalStates[i].IsReturning != proportionalStates[j].IsReturning {
			return proportionalStates[i].IsReturning
		}
		return proportionalStates[i].HasVariants
	})

	if len(proportionalStates) > displayCount {
		return proportionalStates[:displayCount]
	}
	for len(proportionalStates) < displayCount {
		proportionalStates = append(proportionalStates, ShopperState{LastActivity: timeTiers["dormant"]})
	}

	return proportionalStates
}
