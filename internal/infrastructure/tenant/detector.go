// Package tenant provides store detection and validation.
package tenant

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// Detector handles store detection from HTTP requests
type Detector struct {
	registry   *StoreRegistry
	multiStore bool
	logger     *logging.ChanneledLogger
}

// NewDetector creates a new store detector
func NewDetector(logger *logging.ChanneledLogger) (*Detector, error) {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load store registry: %w", err)
	}

	multiStore := false
	if val := os.Getenv("ENABLE_MULTI_STORE"); val != "" {
		multiStore, _ = strconv.ParseBool(val)
	}

	return &Detector{
		registry:   registry,
		multiStore: multiStore,
		logger:     logger,
	}, nil
}

// DetectStore extracts the store ID from a request. Resolution order is
// the X-Store-ID header, then the storeId query parameter, then the
// request host against registered domains.
func (d *Detector) DetectStore(c *gin.Context) (string, error) {
	var storeID string

	if d.multiStore {
		storeID = c.GetHeader("X-Store-ID")
		if storeID == "" {
			storeID = c.Query("storeId")
		}
		if storeID == "" {
			storeID = d.matchDomain(c.Request.Host)
		}
		if storeID == "" {
			return "", fmt.Errorf("could not resolve store for host %s", c.Request.Host)
		}
	} else {
		// Single store mode always uses "default"
		storeID = "default"
	}

	if _, exists := d.registry.Stores[storeID]; !exists {
		// Auto-register if the store has a config directory or is default
		if storeID == "default" || d.hasConfigDirectory(storeID) {
			d.registry.Stores[storeID] = StoreInfo{
				StoreID:      storeID,
				Domains:      []string{"*"},
				Status:       "inactive",
				DatabaseType: "",
			}
		} else {
			return "", fmt.Errorf("unknown store: %s", storeID)
		}
	}

	return storeID, nil
}

// matchDomain finds the store whose registered domains include the host
func (d *Detector) matchDomain(host string) string {
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	for storeID, info := range d.registry.Stores {
		for _, domain := range info.Domains {
			if domain != "*" && strings.EqualFold(domain, host) {
				return storeID
			}
		}
	}
	return ""
}

// hasConfigDirectory checks if a store has a config directory
func (d *Detector) hasConfigDirectory(storeID string) bool {
	root, err := configRoot()
	if err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(root, "config", storeID)); err == nil {
		return true
	}
	return false
}

// ValidateDomain checks if the request domain is allowed for the store
func (d *Detector) ValidateDomain(storeID, domain string) bool {
	info, exists := d.registry.Stores[storeID]
	if !exists {
		return false
	}

	for _, allowed := range info.Domains {
		if allowed == "*" {
			return true
		}
		if strings.EqualFold(allowed, domain) {
			return true
		}
	}
	return false
}

// GetStoreStatus returns the current status of a store
func (d *Detector) GetStoreStatus(storeID string) string {
	if info, exists := d.registry.Stores[storeID]; exists {
		return info.Status
	}
	return "unknown"
}

// UpdateStoreStatus updates the cached registry status
func (d *Detector) UpdateStoreStatus(storeID, status, dbType string) {
	if info, exists := d.registry.Stores[storeID]; exists {
		info.Status = status
		if dbType != "" {
			info.DatabaseType = dbType
		}
		d.registry.Stores[storeID] = info
	}
}

// RefreshRegistry reloads the store registry from disk
func (d *Detector) RefreshRegistry() error {
	registry, err := LoadStoreRegistry()
	if err != nil {
		return fmt.Errorf("failed to refresh store registry: %w", err)
	}
	d.registry = registry
	return nil
}

// GetRegistry returns the current registry (for external access)
func (d *Detector) GetRegistry() *StoreRegistry {
	return d.registry
}
