// Package types defines cache data structures for multi-store catalog and rendering state.
package types

import (
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

// StoreCatalogCache holds all catalog entities for a single store
type StoreCatalogCache struct {
	Products     map[string]*catalog.Product     // id -> product
	Categories   map[string]*catalog.Category    // id -> category
	Attributes   map[string]*catalog.Attribute   // id -> attribute
	Coupons      map[string]*catalog.Coupon      // id -> coupon
	SeoTemplates map[string]*catalog.SeoTemplate // id -> template
	AbTests      map[string]*catalog.AbTest      // id -> test

	// Lookup indices
	ProductSlugToID      map[string]string   // slug -> product id
	CategorySlugToID     map[string]string   // slug -> category id
	AttributeCodeToID    map[string]string   // code -> attribute id
	CouponCodeToID       map[string]string   // code -> coupon id
	SeoEntityTypeToID    map[string]string   // entity type -> template id
	CategoryToProductIDs map[string][]string // category id -> []product id

	// Cached ID lists, nil or empty means not loaded
	AllProductIDs    []string
	AllCategoryIDs   []string
	AllAttributeIDs  []string
	AllCouponIDs     []string
	RunningAbTestIDs []string

	// Cache metadata
	LastUpdated time.Time
	Mu          sync.RWMutex // Exported for access
}
