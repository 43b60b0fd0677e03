// Package interfaces defines cache operation contracts for multi-store catalog management.
package interfaces

import (
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
)

// CatalogCache defines operations for catalog entity caching
type CatalogCache interface {
	GetProduct(storeID, id string) (*catalog.Product, bool)
	SetProduct(storeID string, product *catalog.Product)
	GetAllProductIDs(storeID string) ([]string, bool)
	SetAllProductIDs(storeID string, ids []string)
	GetProductIDBySlug(storeID, slug string) (string, bool)
	GetProductIDsByCategory(storeID, categoryID string) ([]string, bool)
	SetProductIDsByCategory(storeID, categoryID string, ids []string)
	InvalidateProduct(storeID, id string)
	AddProductID(storeID, id string)
	RemoveProductID(storeID, id string)
	GetCategory(storeID, id string) (*catalog.Category, bool)
	SetCategory(storeID string, category *catalog.Category)
	GetAllCategoryIDs(storeID string) ([]string, bool)
	SetAllCategoryIDs(storeID string, ids []string)
	GetCategoryIDBySlug(storeID, slug string) (string, bool)
	InvalidateCategory(storeID, id string)
	AddCategoryID(storeID, id string)
	RemoveCategoryID(storeID, id string)
	GetAttribute(storeID, id string) (*catalog.Attribute, bool)
	SetAttribute(storeID string, attribute *catalog.Attribute)
	GetAllAttributeIDs(storeID string) ([]string, bool)
	SetAllAttributeIDs(storeID string, ids []string)
	GetAttributeIDByCode(storeID, code string) (string, bool)
	InvalidateAttribute(storeID, id string)
	GetCoupon(storeID, id string) (*catalog.Coupon, bool)
	SetCoupon(storeID string, coupon *catalog.Coupon)
	GetAllCouponIDs(storeID string) ([]string, bool)
	SetAllCouponIDs(storeID string, ids []string)
	GetCouponIDByCode(storeID, code string) (string, bool)
	InvalidateCoupon(storeID, id string)
	GetSeoTemplate(storeID, id string) (*catalog.SeoTemplate, bool)
	SetSeoTemplate(storeID string, template *catalog.SeoTemplate)
	GetSeoTemplateIDByEntityType(storeID, entityType string) (string, bool)
	InvalidateSeoTemplate(storeID, id string)
	GetAbTest(storeID, id string) (*catalog.AbTest, bool)
	SetAbTest(storeID string, test *catalog.AbTest)
	GetRunningAbTestIDs(storeID string) ([]string, bool)
	SetRunningAbTestIDs(storeID string, ids []string)
	InvalidateAbTest(storeID, id string)
	InvalidateCatalogCache(storeID string)
}

// LayoutCache defines operations for slot layout caching
type LayoutCache interface {
	GetLayout(storeID, id string) (*rendering.SlotLayout, bool)
	SetLayout(storeID string, layout *rendering.SlotLayout)
	GetAllLayoutIDs(storeID string) ([]string, bool)
	SetAllLayoutIDs(storeID string, ids []string)
	GetPublishedLayoutID(storeID, pageType string) (string, bool)
	SetPublishedLayoutID(storeID, pageType, layoutID string)
	InvalidateLayout(storeID, id string)
	InvalidateLayoutCache(storeID string)
}

// FragmentCache defines operations for rendered HTML fragment caching
type FragmentCache interface {
	GetFragment(storeID, layoutID string, variant types.FragmentVariant) (*types.Fragment, bool)
	SetFragment(storeID, layoutID string, variant types.FragmentVariant, html string, dependsOn []string)
	GetFragmentDependencies(storeID, entityID string) ([]string, bool)
	InvalidateByDependency(storeID, entityID string)
	InvalidateFragment(storeID, layoutID string, variant types.FragmentVariant)
	InvalidateFragmentCache(storeID string)
	GetAllFragmentKeys(storeID string) []string
}

// SessionCache defines operations for shopper session caching
type SessionCache interface {
	GetSession(storeID, sessionID string) (*types.SessionData, bool)
	SetSession(storeID string, sessionData *types.SessionData)
	RemoveSession(storeID, sessionID string)
	GetSessionsByVisitor(storeID, visitorID string) []string
	GetVisitorState(storeID, visitorID string) (*types.VisitorState, bool)
	SetVisitorState(storeID string, state *types.VisitorState)
	IsKnownVisitor(storeID, visitorID string) bool
	SetKnownVisitor(storeID, visitorID string, isKnown bool)
	LoadKnownVisitors(storeID string, visitors map[string]bool)
	InvalidateSessionCache(storeID string)
	GetAllSessionIDs(storeID string) []string
	GetAllVisitorIDs(storeID string) []string
}

// AnalyticsCache defines operations for analytics caching
type AnalyticsCache interface {
	GetHourlyEventBin(storeID, hourKey string) (*types.HourlyEventBin, bool)
	SetHourlyEventBin(storeID, hourKey string, bin *types.HourlyEventBin)
	GetHourlyEventRange(storeID string, hourKeys []string) (map[string]*types.HourlyEventBin, []string)
	GetEventSummary(storeID, cacheKey string) (*types.EventSummaryCache, bool)
	SetEventSummary(storeID, cacheKey string, summary *types.EventSummaryCache)
	GetDashboardData(storeID string) (*types.DashboardCache, bool)
	SetDashboardData(storeID string, data *types.DashboardCache)
	PurgeExpiredBins(storeID string)
	InvalidateAnalyticsCache(storeID string)
	UpdateLastFullHour(storeID, hourKey string)
}

// ConfigCache defines operations for store settings and i18n caching
type ConfigCache interface {
	GetSettings(storeID string) (map[string]any, bool)
	SetSettings(storeID string, settings map[string]any)
	GetLanguages(storeID string) ([]*i18n.Language, bool)
	SetLanguages(storeID string, languages []*i18n.Language, defaultLanguage string)
	GetDefaultLanguage(storeID string) (string, bool)
	GetUILabels(storeID, language string) (map[string]string, bool)
	SetUILabels(storeID, language string, labels map[string]string)
	InvalidateUILabels(storeID, language string)
	GetCreditBalance(storeID string) (*billing.CreditBalance, bool)
	SetCreditBalance(storeID string, balance *billing.CreditBalance)
	InvalidateCreditBalance(storeID string)
	GetCreditCosts(storeID string) (map[string]int, bool)
	SetCreditCosts(storeID string, costs map[string]int)
	InvalidateConfigCache(storeID string)
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	CatalogCache
	LayoutCache
	FragmentCache
	SessionCache
	AnalyticsCache
	ConfigCache
	InitializeStore(storeID string)
	InvalidateStore(storeID string)
	GetStoreStats(storeID string) CacheStats
	InvalidateAll()
	Health() map[string]any
}

type CacheStats struct {
	Products  int `json:"products"`
	Fragments int `json:"fragments"`
	Sessions  int `json:"sessions"`
	EventBins int `json:"eventBins"`
}

type CacheTTL time.Duration

const (
	TTLNever    CacheTTL = CacheTTL(0)
	TTL1Minute  CacheTTL = CacheTTL(time.Minute)
	TTL5Minutes CacheTTL = CacheTTL(5 * time.Minute)
	TTL1Hour    CacheTTL = CacheTTL(time.Hour)
	TTL24Hours  CacheTTL = CacheTTL(24 * time.Hour)
	TTL7Days    CacheTTL = CacheTTL(7 * 24 * time.Hour)
	TTL28Days   CacheTTL = CacheTTL(28 * 24 * time.Hour)
)
