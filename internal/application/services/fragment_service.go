package services

import (
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/internal/presentation/templates"
)

// FragmentService renders storefront pages from published slot layouts
// and caches the resulting HTML per variant. A variant is the tuple of
// page type, view mode, language, and query state; each caches
// independently and invalidates through the entities it rendered.
type FragmentService struct {
	catalog      *CatalogService
	layouts      *LayoutService
	translations *TranslationService
	configs      *ConfigService
	seo          *SeoService
	renderer     *templates.SlotRenderer
}

// NewFragmentService creates a new fragment service.
func NewFragmentService(
	catalog *CatalogService,
	layouts *LayoutService,
	translations *TranslationService,
	configs *ConfigService,
	seo *SeoService,
	renderer *templates.SlotRenderer,
) *FragmentService {
	return &FragmentService{
		catalog:      catalog,
		layouts:      layouts,
		translations: translations,
		configs:      configs,
		seo:          seo,
		renderer:     renderer,
	}
}

// RenderCategoryPage renders a category page for the session's view
// mode and language, serving from the fragment cache when the variant
// is already rendered.
func (s *FragmentService) RenderCategoryPage(storeCtx *tenant.Context, categorySlug string, session *types.SessionData, query ProductQuery) (string, error) {
	start := time.Now()

	layout, err := s.layouts.GetPublishedLayout(storeCtx, "category")
	if err != nil {
		return "", err
	}
	if layout == nil {
		return "", fmt.Errorf("no published category layout for store %s", storeCtx.StoreID)
	}

	language, defaultLanguage, err := s.translations.ResolveLanguage(storeCtx, session.Language)
	if err != nil {
		return "", err
	}

	variant := types.FragmentVariant{
		PageType:  "category",
		ViewMode:  session.ViewMode,
		Language:  language,
		QueryHash: query.Hash(),
	}
	if fragment, found := storeCtx.CacheManager.GetFragment(storeCtx.StoreID, layout.ID, variant); found {
		storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "category", len(layout.Slots), time.Since(start), true)
		return fragment.HTML, nil
	}

	category, err := s.catalog.GetCategoryBySlug(storeCtx, categorySlug)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", fmt.Errorf("category not found: %s", categorySlug)
	}
	category, err = s.translations.TranslateCategory(storeCtx, language, category)
	if err != nil {
		return "", err
	}

	result, err := s.catalog.QueryProducts(storeCtx, category.ID, query)
	if err != nil {
		return "", err
	}
	products, err := s.translations.TranslateProducts(storeCtx, language, result.Products)
	if err != nil {
		return "", err
	}

	attributes, err := s.catalog.ListFilterableAttributes(storeCtx)
	if err != nil {
		return "", err
	}
	attributes, err = s.translations.TranslateAttributes(storeCtx, language, attributes)
	if err != nil {
		return "", err
	}

	page, err := s.buildPageContext(storeCtx, language, defaultLanguage, session.ViewMode)
	if err != nil {
		return "", err
	}
	page.Category = category
	page.Breadcrumbs = s.catalog.BuildBreadcrumbs(storeCtx, category, page.BaseURL)
	page.Products = products
	page.Attributes = attributes
	page.ActiveFilters = query.Filters
	page.SearchQuery = query.Search
	page.SortBy = query.SortBy
	page.Pagination = result.Pagination

	html := s.renderer.RenderPage(layout, page)

	dependsOn := []string{"layout:" + layout.ID, "category:" + category.ID}
	for _, p := range products {
		dependsOn = append(dependsOn, "product:"+p.ID)
	}
	storeCtx.CacheManager.SetFragment(storeCtx.StoreID, layout.ID, variant, html, dependsOn)

	storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "category", len(layout.Slots), time.Since(start), false)
	return html, nil
}

// RenderProductPage renders a product detail page.
func (s *FragmentService) RenderProductPage(storeCtx *tenant.Context, productSlug string, session *types.SessionData) (string, error) {
	start := time.Now()

	layout, err := s.layouts.GetPublishedLayout(storeCtx, "product")
	if err != nil {
		return "", err
	}
	if layout == nil {
		return "", fmt.Errorf("no published product layout for store %s", storeCtx.StoreID)
	}

	language, defaultLanguage, err := s.translations.ResolveLanguage(storeCtx, session.Language)
	if err != nil {
		return "", err
	}

	// Product pages share one layout, so the slug discriminates the
	// cached variants.
	variant := types.FragmentVariant{
		PageType:  "product",
		ViewMode:  session.ViewMode,
		Language:  language,
		QueryHash: productSlug,
	}
	if fragment, found := storeCtx.CacheManager.GetFragment(storeCtx.StoreID, layout.ID, variant); found {
		storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "product", len(layout.Slots), time.Since(start), true)
		return fragment.HTML, nil
	}

	product, err := s.catalog.GetProductBySlug(storeCtx, productSlug)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", fmt.Errorf("product not found: %s", productSlug)
	}
	products, err := s.translations.TranslateProducts(storeCtx, language, []*catalog.Product{product})
	if err != nil {
		return "", err
	}

	page, err := s.buildPageContext(storeCtx, language, defaultLanguage, session.ViewMode)
	if err != nil {
		return "", err
	}
	page.Products = products
	page.Pagination = rendering.PaginationState{CurrentPage: 1, ItemsPerPage: 1, TotalProducts: 1}
	if len(product.CategoryIDs) > 0 {
		if category, err := s.catalog.GetCategory(storeCtx, product.CategoryIDs[0]); err == nil && category != nil {
			page.Category = category
			page.Breadcrumbs = s.catalog.BuildBreadcrumbs(storeCtx, category, page.BaseURL)
		}
	}

	html := s.renderer.RenderPage(layout, page)

	dependsOn := []string{"layout:" + layout.ID, "product:" + product.ID}
	if page.Category != nil {
		dependsOn = append(dependsOn, "category:"+page.Category.ID)
	}
	storeCtx.CacheManager.SetFragment(storeCtx.StoreID, layout.ID, variant, html, dependsOn)

	storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "product", len(layout.Slots), time.Since(start), false)
	return html, nil
}

// RenderHomePage renders the home layout over the store's featured
// products.
func (s *FragmentService) RenderHomePage(storeCtx *tenant.Context, session *types.SessionData) (string, error) {
	start := time.Now()

	layout, err := s.layouts.GetPublishedLayout(storeCtx, "home")
	if err != nil {
		return "", err
	}
	if layout == nil {
		return "", fmt.Errorf("no published home layout for store %s", storeCtx.StoreID)
	}

	language, defaultLanguage, err := s.translations.ResolveLanguage(storeCtx, session.Language)
	if err != nil {
		return "", err
	}

	variant := types.FragmentVariant{
		PageType: "home",
		ViewMode: session.ViewMode,
		Language: language,
	}
	if fragment, found := storeCtx.CacheManager.GetFragment(storeCtx.StoreID, layout.ID, variant); found {
		storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "home", len(layout.Slots), time.Since(start), true)
		return fragment.HTML, nil
	}

	all, err := s.catalog.ListProducts(storeCtx)
	if err != nil {
		return "", err
	}
	featured := make([]*catalog.Product, 0, len(all))
	for _, p := range all {
		if p != nil && p.IsActive && p.IsFeatured {
			featured = append(featured, p)
		}
	}
	featured, err = s.translations.TranslateProducts(storeCtx, language, featured)
	if err != nil {
		return "", err
	}

	page, err := s.buildPageContext(storeCtx, language, defaultLanguage, session.ViewMode)
	if err != nil {
		return "", err
	}
	page.Products = featured
	page.Pagination = rendering.PaginationState{
		CurrentPage:   1,
		ItemsPerPage:  len(featured),
		TotalProducts: len(featured),
	}

	html := s.renderer.RenderPage(layout, page)

	dependsOn := []string{"layout:" + layout.ID}
	for _, p := range featured {
		dependsOn = append(dependsOn, "product:"+p.ID)
	}
	storeCtx.CacheManager.SetFragment(storeCtx.StoreID, layout.ID, variant, html, dependsOn)

	storeCtx.Logger.LogRenderPass(storeCtx.StoreID, "home", len(layout.Slots), time.Since(start), false)
	return html, nil
}

// ResolveProductMeta produces the head metadata for a product page.
// The storefront shell owns the document head, so this travels beside
// the rendered fragment rather than inside it.
func (s *FragmentService) ResolveProductMeta(storeCtx *tenant.Context, productSlug string, session *types.SessionData) (*SeoMeta, error) {
	product, err := s.catalog.GetProductBySlug(storeCtx, productSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %s", productSlug)
	}

	language, defaultLanguage, err := s.translations.ResolveLanguage(storeCtx, session.Language)
	if err != nil {
		return nil, err
	}
	translated, err := s.translations.TranslateProducts(storeCtx, language, []*catalog.Product{product})
	if err != nil {
		return nil, err
	}

	page, err := s.buildPageContext(storeCtx, language, defaultLanguage, session.ViewMode)
	if err != nil {
		return nil, err
	}
	return s.seo.ResolveForProduct(storeCtx, translated[0], page.StoreName, language, page.CurrencyCode, page.Locale)
}

// ResolveCategoryMeta produces the head metadata for a category page.
func (s *FragmentService) ResolveCategoryMeta(storeCtx *tenant.Context, categorySlug string, session *types.SessionData) (*SeoMeta, error) {
	category, err := s.catalog.GetCategoryBySlug(storeCtx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category not found: %s", categorySlug)
	}

	language, defaultLanguage, err := s.translations.ResolveLanguage(storeCtx, session.Language)
	if err != nil {
		return nil, err
	}
	category, err = s.translations.TranslateCategory(storeCtx, language, category)
	if err != nil {
		return nil, err
	}

	page, err := s.buildPageContext(storeCtx, language, defaultLanguage, session.ViewMode)
	if err != nil {
		return nil, err
	}
	return s.seo.ResolveForCategory(storeCtx, category, page.StoreName, language)
}

// InvalidateAll drops every cached fragment of a store, the admin
// escape hatch when something looks stale.
func (s *FragmentService) InvalidateAll(storeCtx *tenant.Context) {
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	storeCtx.Logger.Cache().Info("Fragment cache invalidated", "storeId", storeCtx.StoreID)
}

// buildPageContext assembles the shared, page-type-independent part of
// the render context.
func (s *FragmentService) buildPageContext(storeCtx *tenant.Context, language, defaultLanguage, viewMode string) (*rendering.PageContext, error) {
	settings, err := s.configs.GetSettings(storeCtx)
	if err != nil {
		return nil, err
	}
	labels, err := s.translations.GetUILabels(storeCtx, language)
	if err != nil {
		return nil, err
	}

	return &rendering.PageContext{
		StoreID:         storeCtx.StoreID,
		StoreName:       SettingString(settings, SettingStoreName, storeCtx.StoreID),
		BaseURL:         storeCtx.Config.BaseURL,
		Settings:        settings,
		CurrencyCode:    SettingString(settings, SettingCurrencyCode, "USD"),
		Locale:          SettingString(settings, SettingLocale, "en-US"),
		Language:        language,
		DefaultLanguage: defaultLanguage,
		Translations:    labels,
		ViewMode:        viewMode,
	}, nil
}
