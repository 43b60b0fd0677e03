package services

import (
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	domainServices "github.com/DainoStore/dainostore-go/internal/domain/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/internal/presentation/templates"
)

// SeoMeta is the resolved head metadata for one page.
type SeoMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords,omitempty"`
}

// SeoService resolves meta tags from per-entity-type templates. The
// template patterns share the {{variable}} substitution used for slot
// text, so merchants author both with one syntax.
type SeoService struct {
	pricing *domainServices.PricingService
}

// NewSeoService creates a new SEO service.
func NewSeoService(pricing *domainServices.PricingService) *SeoService {
	return &SeoService{pricing: pricing}
}

// ResolveForProduct builds product-page metadata. Without an active
// template the product's own name and description stand in.
func (s *SeoService) ResolveForProduct(storeCtx *tenant.Context, product *catalog.Product, storeName, language, currencyCode, locale string) (*SeoMeta, error) {
	values := map[string]string{
		"product_name": product.TranslatedName(language),
		"sku":          product.SKU,
		"price":        s.pricing.Format(product.Price, currencyCode, locale),
		"store_name":   storeName,
	}
	fallback := &SeoMeta{
		Title:       product.TranslatedName(language),
		Description: product.Description,
	}
	return s.resolve(storeCtx, "product", values, fallback)
}

// ResolveForCategory builds category-page metadata.
func (s *SeoService) ResolveForCategory(storeCtx *tenant.Context, category *catalog.Category, storeName, language string) (*SeoMeta, error) {
	values := map[string]string{
		"category_name": category.TranslatedName(language),
		"store_name":    storeName,
	}
	fallback := &SeoMeta{
		Title:       category.TranslatedName(language),
		Description: category.Description,
	}
	return s.resolve(storeCtx, "category", values, fallback)
}

func (s *SeoService) resolve(storeCtx *tenant.Context, entityType string, values map[string]string, fallback *SeoMeta) (*SeoMeta, error) {
	tpl, err := storeCtx.SeoTemplateRepo().FindByEntityType(storeCtx.StoreID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seo template: %w", err)
	}
	if tpl == nil || !tpl.IsActive {
		return fallback, nil
	}

	meta := &SeoMeta{
		Title:       templates.SubstituteVariables(tpl.TitlePat, values),
		Description: templates.SubstituteVariables(tpl.DescPat, values),
		Keywords:    templates.SubstituteVariables(tpl.KeywordsPat, values),
	}
	if meta.Title == "" {
		meta.Title = fallback.Title
	}
	if meta.Description == "" {
		meta.Description = fallback.Description
	}
	return meta, nil
}

// ListTemplates returns every SEO template.
func (s *SeoService) ListTemplates(storeCtx *tenant.Context) ([]*catalog.SeoTemplate, error) {
	all, err := storeCtx.SeoTemplateRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seo templates: %w", err)
	}
	return all, nil
}

// CreateTemplate stores a new SEO template.
func (s *SeoService) CreateTemplate(storeCtx *tenant.Context, template *catalog.SeoTemplate) error {
	if template.EntityType == "" {
		return fmt.Errorf("seo template entity type is required")
	}
	if template.TitlePat == "" {
		return fmt.Errorf("seo template title pattern is required")
	}
	if template.ID == "" {
		template.ID = security.GenerateULID()
	}
	if template.Created.IsZero() {
		template.Created = time.Now().UTC()
	}

	if err := storeCtx.SeoTemplateRepo().Store(storeCtx.StoreID, template); err != nil {
		return fmt.Errorf("failed to create seo template: %w", err)
	}
	return nil
}

// UpdateTemplate persists SEO template changes.
func (s *SeoService) UpdateTemplate(storeCtx *tenant.Context, template *catalog.SeoTemplate) error {
	if template.ID == "" {
		return fmt.Errorf("seo template id is required")
	}
	if err := storeCtx.SeoTemplateRepo().Update(storeCtx.StoreID, template); err != nil {
		return fmt.Errorf("failed to update seo template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a SEO template.
func (s *SeoService) DeleteTemplate(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.SeoTemplateRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete seo template: %w", err)
	}
	return nil
}
