// Package repositories defines the repository interfaces for store
// content. These abstract the data persistence details, keeping the
// application layer decoupled from the database.
package repositories

import (
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

type ProductRepository interface {
	FindByID(storeID, id string) (*catalog.Product, error)
	FindBySlug(storeID, slug string) (*catalog.Product, error)
	FindByCategory(storeID, categoryID string) ([]*catalog.Product, error)
	FindAll(storeID string) ([]*catalog.Product, error)
	FindByIDs(storeID string, ids []string) ([]*catalog.Product, error)
	Store(storeID string, product *catalog.Product) error
	Update(storeID string, product *catalog.Product) error
	Delete(storeID, id string) error
}

type CategoryRepository interface {
	FindByID(storeID, id string) (*catalog.Category, error)
	FindBySlug(storeID, slug string) (*catalog.Category, error)
	FindChildren(storeID, parentID string) ([]*catalog.Category, error)
	FindAll(storeID string) ([]*catalog.Category, error)
	Store(storeID string, category *catalog.Category) error
	Update(storeID string, category *catalog.Category) error
	Delete(storeID, id string) error
}

type AttributeRepository interface {
	FindByID(storeID, id string) (*catalog.Attribute, error)
	FindByCode(storeID, code string) (*catalog.Attribute, error)
	FindFilterable(storeID string) ([]*catalog.Attribute, error)
	FindAll(storeID string) ([]*catalog.Attribute, error)
	Store(storeID string, attribute *catalog.Attribute) error
	Update(storeID string, attribute *catalog.Attribute) error
	Delete(storeID, id string) error
}

type SlotLayoutRepository interface {
	FindByID(storeID, id string) (*rendering.SlotLayout, error)
	FindPublished(storeID, pageType string) (*rendering.SlotLayout, error)
	FindAll(storeID string) ([]*rendering.SlotLayout, error)
	Store(storeID string, layout *rendering.SlotLayout) error
	Update(storeID string, layout *rendering.SlotLayout) error
	Delete(storeID, id string) error
}

type CouponRepository interface {
	FindByID(storeID, id string) (*catalog.Coupon, error)
	FindByCode(storeID, code string) (*catalog.Coupon, error)
	FindAll(storeID string) ([]*catalog.Coupon, error)
	Store(storeID string, coupon *catalog.Coupon) error
	Update(storeID string, coupon *catalog.Coupon) error
	IncrementUsage(storeID, id string) error
	Delete(storeID, id string) error
}

type SeoTemplateRepository interface {
	FindByID(storeID, id string) (*catalog.SeoTemplate, error)
	FindByEntityType(storeID, entityType string) (*catalog.SeoTemplate, error)
	FindAll(storeID string) ([]*catalog.SeoTemplate, error)
	Store(storeID string, template *catalog.SeoTemplate) error
	Update(storeID string, template *catalog.SeoTemplate) error
	Delete(storeID, id string) error
}

type AbTestRepository interface {
	FindByID(storeID, id string) (*catalog.AbTest, error)
	FindRunning(storeID string) ([]*catalog.AbTest, error)
	FindAll(storeID string) ([]*catalog.AbTest, error)
	Store(storeID string, test *catalog.AbTest) error
	Update(storeID string, test *catalog.AbTest) error
	RecordImpression(storeID, testID, variantID string) error
	RecordConversion(storeID, testID, variantID string) error
	Delete(storeID, id string) error
}

type LanguageRepository interface {
	FindAll(storeID string) ([]*i18n.Language, error)
	FindDefault(storeID string) (*i18n.Language, error)
	Store(storeID string, language *i18n.Language) error
	Update(storeID string, language *i18n.Language) error
	Delete(storeID, id string) error
}

type TranslationRepository interface {
	FindByLanguage(storeID, language string) ([]*i18n.Translation, error)
	FindUILabels(storeID, language string) (map[string]string, error)
	FindEntityValues(storeID, language, entityType string) (map[string]map[string]string, error)
	Upsert(storeID string, translation *i18n.Translation) error
	Delete(storeID, id string) error
}

type SettingsRepository interface {
	FindAll(storeID string) (map[string]any, error)
	Set(storeID, key string, value any) error
	Delete(storeID, key string) error
}

type EventRepository interface {
	Store(storeID string, event *analytics.CustomEvent) error
	CountByName(storeID string, query analytics.EventQuery) ([]*analytics.EventCount, error)
	FindRecent(storeID string, limit int) ([]*analytics.CustomEvent, error)
	PurgeOlderThan(storeID string, cutoff time.Time) (int, error)
}

type CreditRepository interface {
	FindCosts(storeID string) ([]*billing.CreditCost, error)
	FindBalance(storeID string) (*billing.CreditBalance, error)
	ApplyDelta(storeID, operation string, delta int, note string) (*billing.LedgerEntry, error)
	FindLedger(storeID string, limit int) ([]*billing.LedgerEntry, error)
}
