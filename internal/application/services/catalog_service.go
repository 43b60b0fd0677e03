package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/messaging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Sort orders accepted by product queries.
const (
	SortDefault   = ""
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// ProductQuery captures the shopper-controlled inputs of a category
// page: layered-navigation selections, free-text search, sort order,
// and paging.
type ProductQuery struct {
	Filters map[string][]string
	Search  string
	SortBy  string
	Page    int
	PerPage int
}

// Hash returns a stable short digest of the query, used to key cached
// fragments per filter state. The zero query hashes to the empty
// string so unfiltered first pages share one cache entry.
func (q ProductQuery) Hash() string {
	if len(q.Filters) == 0 && q.Search == "" && q.SortBy == SortDefault && q.Page <= 1 && q.PerPage == 0 {
		return ""
	}

	var sb strings.Builder
	codes := make([]string, 0, len(q.Filters))
	for code := range q.Filters {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		values := append([]string(nil), q.Filters[code]...)
		sort.Strings(values)
		sb.WriteString(code)
		sb.WriteByte('=')
		sb.WriteString(strings.Join(values, ","))
		sb.WriteByte(';')
	}
	fmt.Fprintf(&sb, "s=%s;o=%s;p=%d;n=%d", q.Search, q.SortBy, q.Page, q.PerPage)

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}

// ProductQueryResult is one page of matching products plus the paging
// state the renderer needs for the pagination component.
type ProductQueryResult struct {
	Products   []*catalog.Product
	Pagination rendering.PaginationState
}

// CatalogService orchestrates catalog reads for the storefront and
// catalog writes for the admin API. Writes invalidate dependent
// rendered fragments and notify connected storefronts.
type CatalogService struct {
	broadcaster messaging.Broadcaster
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(broadcaster messaging.Broadcaster) *CatalogService {
	return &CatalogService{broadcaster: broadcaster}
}

// =============================================================================
// Storefront reads
// =============================================================================

// GetProduct returns one product by ID, nil when absent.
func (s *CatalogService) GetProduct(storeCtx *tenant.Context, id string) (*catalog.Product, error) {
	product, err := storeCtx.ProductRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetProductBySlug returns one product by its URL slug, nil when absent.
func (s *CatalogService) GetProductBySlug(storeCtx *tenant.Context, slug string) (*catalog.Product, error) {
	product, err := storeCtx.ProductRepo().FindBySlug(storeCtx.StoreID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return product, nil
}

// ListProducts returns every product in the store, admin ordering.
func (s *CatalogService) ListProducts(storeCtx *tenant.Context) ([]*catalog.Product, error) {
	products, err := storeCtx.ProductRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetCategory returns one category by ID, nil when absent.
func (s *CatalogService) GetCategory(storeCtx *tenant.Context, id string) (*catalog.Category, error) {
	category, err := storeCtx.CategoryRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetCategoryBySlug returns one category by its URL slug, nil when absent.
func (s *CatalogService) GetCategoryBySlug(storeCtx *tenant.Context, slug string) (*catalog.Category, error) {
	category, err := storeCtx.CategoryRepo().FindBySlug(storeCtx.StoreID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return category, nil
}

// ListCategories returns every category in the store.
func (s *CatalogService) ListCategories(storeCtx *tenant.Context) ([]*catalog.Category, error) {
	categories, err := storeCtx.CategoryRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListAttributes returns every attribute definition in the store.
func (s *CatalogService) ListAttributes(storeCtx *tenant.Context) ([]*catalog.Attribute, error) {
	attributes, err := storeCtx.AttributeRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	return attributes, nil
}

// ListFilterableAttributes returns the attributes that participate in
// layered navigation, in their configured sort order.
func (s *CatalogService) ListFilterableAttributes(storeCtx *tenant.Context) ([]*catalog.Attribute, error) {
	attributes, err := storeCtx.AttributeRepo().FindFilterable(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filterable attributes: %w", err)
	}
	return attributes, nil
}

// BuildBreadcrumbs walks the category ancestry root-first. A broken or
// cyclic parent chain truncates the trail rather than failing the page.
func (s *CatalogService) BuildBreadcrumbs(storeCtx *tenant.Context, category *catalog.Category, baseURL string) []catalog.Breadcrumb {
	if category == nil {
		return nil
	}

	var chain []*catalog.Category
	visited := make(map[string]bool)
	current := category
	for current != nil && !visited[current.ID] {
		visited[current.ID] = true
		chain = append(chain, current)
		if current.ParentID == "" {
			break
		}
		parent, err := storeCtx.CategoryRepo().FindByID(storeCtx.StoreID, current.ParentID)
		if err != nil || parent == nil {
			break
		}
		current = parent
	}

	breadcrumbs := make([]catalog.Breadcrumb, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		breadcrumbs = append(breadcrumbs, catalog.Breadcrumb{
			Name: c.Name,
			Slug: c.Slug,
			URL:  baseURL + "/category/" + c.Slug,
		})
	}
	return breadcrumbs
}

// QueryProducts resolves one category page worth of products: active
// products of the category (all products when categoryID is empty),
// narrowed by filters and search, sorted, then paged.
func (s *CatalogService) QueryProducts(storeCtx *tenant.Context, categoryID string, query ProductQuery) (*ProductQueryResult, error) {
	var (
		products []*catalog.Product
		err      error
	)
	if categoryID == "" {
		products, err = storeCtx.ProductRepo().FindAll(storeCtx.StoreID)
	} else {
		products, err = storeCtx.ProductRepo().FindByCategory(storeCtx.StoreID, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	matched := make([]*catalog.Product, 0, len(products))
	for _, p := range products {
		if p == nil || !p.IsActive {
			continue
		}
		if !matchesFilters(p, query.Filters) {
			continue
		}
		if !matchesSearch(p, query.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, query.SortBy)

	perPage := query.PerPage
	if perPage <= 0 {
		perPage = config.DefaultItemsPerPage
	}
	state := rendering.PaginationState{
		CurrentPage:   query.Page,
		ItemsPerPage:  perPage,
		TotalProducts: len(matched),
	}
	if state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	if state.CurrentPage > state.TotalPages() {
		state.CurrentPage = state.TotalPages()
	}

	start := (state.CurrentPage - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}

	return &ProductQueryResult{
		Products:   matched[start:end],
		Pagination: state,
	}, nil
}

// matchesFilters applies layered-navigation selections: values within
// one attribute are OR-ed, attributes are AND-ed. Slider selections
// arrive as a single "min-max" range string.
func matchesFilters(p *catalog.Product, filters map[string][]string) bool {
	for code, selected := range filters {
		if len(selected) == 0 {
			continue
		}
		raw := ""
		if p.Attributes != nil {
			raw = p.Attributes[code]
		}
		if raw == "" {
			return false
		}
		if !matchesAttributeSelection(raw, selected) {
			return false
		}
	}
	return true
}

func matchesAttributeSelection(raw string, selected []string) bool {
	for _, want := range selected {
		if raw == want {
			return true
		}
		if min, max, ok := parseRange(want); ok {
			if value, err := strconv.ParseFloat(raw, 64); err == nil && value >= min && value <= max {
				return true
			}
		}
	}
	return false
}

func parseRange(s string) (min, max float64, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, errMin := strconv.ParseFloat(parts[0], 64)
	max, errMax := strconv.ParseFloat(parts[1], 64)
	if errMin != nil || errMax != nil || min > max {
		return 0, 0, false
	}
	return min, max, true
}

func matchesSearch(p *catalog.Product, term string) bool {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	for _, name := range p.Names {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// sortProducts orders in place. The default order surfaces featured
// products first, then alphabetical. All comparators are stable so
// equal products keep their repository order.
func sortProducts(products []*catalog.Product, sortBy string) {
	switch sortBy {
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) > strings.ToLower(products[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Created.After(products[j].Created)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].IsFeatured != products[j].IsFeatured {
				return products[i].IsFeatured
			}
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}

// =============================================================================
// Admin writes
// =============================================================================

// CreateProduct stores a new product, filling in ID and slug when the
// admin UI leaves them blank.
func (s *CatalogService) CreateProduct(storeCtx *tenant.Context, product *catalog.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.ID == "" {
		product.ID = security.GenerateULID()
	}
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	if product.Created.IsZero() {
		product.Created = time.Now().UTC()
	}

	if err := storeCtx.ProductRepo().Store(storeCtx.StoreID, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "product", product.ID)
	return nil
}

// UpdateProduct persists product changes and drops every cached
// fragment that rendered the previous version.
func (s *CatalogService) UpdateProduct(storeCtx *tenant.Context, product *catalog.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if err := storeCtx.ProductRepo().Update(storeCtx.StoreID, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "product", product.ID)
	return nil
}

// DeleteProduct removes a product and its category links.
func (s *CatalogService) DeleteProduct(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.ProductRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "product", id)
	return nil
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(storeCtx *tenant.Context, category *catalog.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if category.ID == "" {
		category.ID = security.GenerateULID()
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if category.Created.IsZero() {
		category.Created = time.Now().UTC()
	}

	if err := storeCtx.CategoryRepo().Store(storeCtx.StoreID, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "category", category.ID)
	return nil
}

// UpdateCategory persists category changes.
func (s *CatalogService) UpdateCategory(storeCtx *tenant.Context, category *catalog.Category) error {
	if category.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if err := storeCtx.CategoryRepo().Update(storeCtx.StoreID, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "category", category.ID)
	return nil
}

// DeleteCategory removes a category and its product links. Child
// categories keep a dangling parent ID and surface as roots.
func (s *CatalogService) DeleteCategory(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.CategoryRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.afterCatalogWrite(storeCtx, "category", id)
	return nil
}

// CreateAttribute stores a new attribute definition.
func (s *CatalogService) CreateAttribute(storeCtx *tenant.Context, attribute *catalog.Attribute) error {
	if attribute.Code == "" {
		return fmt.Errorf("attribute code is required")
	}
	if attribute.FilterType != catalog.FilterTypeSelect && attribute.FilterType != catalog.FilterTypeSlider {
		return fmt.Errorf("unknown attribute filter type: %s", attribute.FilterType)
	}
	if attribute.ID == "" {
		attribute.ID = security.GenerateULID()
	}

	if err := storeCtx.AttributeRepo().Store(storeCtx.StoreID, attribute); err != nil {
		return fmt.Errorf("failed to create attribute: %w", err)
	}

	s.afterAttributeWrite(storeCtx, attribute.ID)
	return nil
}

// UpdateAttribute persists attribute changes.
func (s *CatalogService) UpdateAttribute(storeCtx *tenant.Context, attribute *catalog.Attribute) error {
	if attribute.ID == "" {
		return fmt.Errorf("attribute id is required")
	}
	if err := storeCtx.AttributeRepo().Update(storeCtx.StoreID, attribute); err != nil {
		return fmt.Errorf("failed to update attribute: %w", err)
	}

	s.afterAttributeWrite(storeCtx, attribute.ID)
	return nil
}

// DeleteAttribute removes an attribute definition. Product attribute
// values keyed by its code become inert rather than being scrubbed.
func (s *CatalogService) DeleteAttribute(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.AttributeRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete attribute: %w", err)
	}

	s.afterAttributeWrite(storeCtx, id)
	return nil
}

// afterCatalogWrite drops rendered fragments that depend on the
// changed entity and pushes a live update to connected storefronts.
func (s *CatalogService) afterCatalogWrite(storeCtx *tenant.Context, kind, id string) {
	storeCtx.CacheManager.InvalidateByDependency(storeCtx.StoreID, kind+":"+id)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCatalogUpdate(storeCtx.StoreID, kind, id)
	}
	storeCtx.Logger.Catalog().Info("Catalog entity changed", "kind", kind, "id", id, "storeId", storeCtx.StoreID)
}

// afterAttributeWrite is broader than afterCatalogWrite: attribute
// definitions shape layered navigation on every page, so the whole
// fragment cache goes.
func (s *CatalogService) afterAttributeWrite(storeCtx *tenant.Context, id string) {
	storeCtx.CacheManager.InvalidateFragmentCache(storeCtx.StoreID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCatalogUpdate(storeCtx.StoreID, "attribute", id)
	}
	storeCtx.Logger.Catalog().Info("Attribute changed", "id", id, "storeId", storeCtx.StoreID)
}

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
