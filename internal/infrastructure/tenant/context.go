// Package tenant provides store context management for multi-store support.
package tenant

import (
	"github.com/DainoStore/dainostore-go/internal/domain/repositories"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	persistenceAnalytics "github.com/DainoStore/dainostore-go/internal/infrastructure/persistence/analytics"
	persistenceBilling "github.com/DainoStore/dainostore-go/internal/infrastructure/persistence/billing"
	persistenceCatalog "github.com/DainoStore/dainostore-go/internal/infrastructure/persistence/catalog"
	persistenceI18n "github.com/DainoStore/dainostore-go/internal/infrastructure/persistence/i18n"
	persistenceRendering "github.com/DainoStore/dainostore-go/internal/infrastructure/persistence/rendering"
)

// Context holds store-specific request context
type Context struct {
	StoreID      string
	Config       *Config
	Database     *Database
	Status       string
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// Close cleans up the store context
func (ctx *Context) Close() error {
	if ctx.Database != nil {
		return ctx.Database.Close()
	}
	return nil
}

// GetStoreID returns the store ID for this context
func (ctx *Context) GetStoreID() string {
	return ctx.StoreID
}

// GetConfig returns the store configuration
func (ctx *Context) GetConfig() *Config {
	return ctx.Config
}

// GetDatabase returns the store database connection
func (ctx *Context) GetDatabase() *Database {
	return ctx.Database
}

// GetStatus returns the store status
func (ctx *Context) GetStatus() string {
	return ctx.Status
}

// GetCacheManager returns the cache manager
func (ctx *Context) GetCacheManager() *manager.Manager {
	return ctx.CacheManager
}

// IsActive returns true if the store is active
func (ctx *Context) IsActive() bool {
	return ctx.Status == "active"
}

// IsReserved returns true if the store is reserved (awaiting activation)
func (ctx *Context) IsReserved() bool {
	return ctx.Status == "reserved"
}

// GetDatabaseInfo returns database connection information for logging
func (ctx *Context) GetDatabaseInfo() string {
	if ctx.Database != nil {
		return ctx.Database.GetConnectionInfo()
	}
	return "no database connection"
}

// =============================================================================
// Repository Factory Methods
// =============================================================================

// ProductRepo returns a product repository instance
func (ctx *Context) ProductRepo() repositories.ProductRepository {
	return persistenceCatalog.NewProductRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// CategoryRepo returns a category repository instance
func (ctx *Context) CategoryRepo() repositories.CategoryRepository {
	return persistenceCatalog.NewCategoryRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// AttributeRepo returns an attribute repository instance
func (ctx *Context) AttributeRepo() repositories.AttributeRepository {
	return persistenceCatalog.NewAttributeRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// LayoutRepo returns a slot layout repository instance
func (ctx *Context) LayoutRepo() repositories.SlotLayoutRepository {
	return persistenceRendering.NewSlotLayoutRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// CouponRepo returns a coupon repository instance
func (ctx *Context) CouponRepo() repositories.CouponRepository {
	return persistenceCatalog.NewCouponRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// SeoTemplateRepo returns a SEO template repository instance
func (ctx *Context) SeoTemplateRepo() repositories.SeoTemplateRepository {
	return persistenceCatalog.NewSeoTemplateRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// AbTestRepo returns an A/B test repository instance
func (ctx *Context) AbTestRepo() repositories.AbTestRepository {
	return persistenceCatalog.NewAbTestRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// LanguageRepo returns a language repository instance
func (ctx *Context) LanguageRepo() repositories.LanguageRepository {
	return persistenceI18n.NewLanguageRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// TranslationRepo returns a translation repository instance
func (ctx *Context) TranslationRepo() repositories.TranslationRepository {
	return persistenceI18n.NewTranslationRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// SettingsRepo returns a settings repository instance
func (ctx *Context) SettingsRepo() repositories.SettingsRepository {
	return persistenceCatalog.NewSettingsRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// EventRepo returns an event repository instance
func (ctx *Context) EventRepo() repositories.EventRepository {
	return persistenceAnalytics.NewEventRepository(ctx.Database.Conn, ctx.Logger)
}

// CreditRepo returns a credit repository instance
func (ctx *Context) CreditRepo() repositories.CreditRepository {
	return persistenceBilling.NewCreditRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}
