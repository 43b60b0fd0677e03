package templates

import (
	"fmt"
	"log"
	"sync"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// ComponentKind names one registered storefront component.
type ComponentKind string

const (
	KindProductGrid       ComponentKind = "product_grid"
	KindPagination        ComponentKind = "pagination"
	KindLayeredNavigation ComponentKind = "layered_navigation"
	KindActiveFilters     ComponentKind = "active_filters"
	KindBreadcrumbs       ComponentKind = "breadcrumbs"
	KindSearchBar         ComponentKind = "search_bar"
	KindSortSelector      ComponentKind = "sort_selector"
	KindCmsBlock          ComponentKind = "cms_block"
)

// knownKinds is the closed set of component names the registry
// accepts. Layout payloads naming anything else are skipped at render
// time instead of failing the page.
var knownKinds = map[ComponentKind]bool{
	KindProductGrid:       true,
	KindPagination:        true,
	KindLayeredNavigation: true,
	KindActiveFilters:     true,
	KindBreadcrumbs:       true,
	KindSearchBar:         true,
	KindSortSelector:      true,
	KindCmsBlock:          true,
}

// ComponentRequest carries everything a component needs for one
// render. Components read from it; they never mutate the page or
// variable context.
type ComponentRequest struct {
	Slot     *rendering.Slot
	Page     *rendering.PageContext
	Vars     *rendering.VariableContext
	ViewMode string

	// AllSlots is the layout's full slot map, for components that
	// style themselves against sibling slots.
	AllSlots map[string]*rendering.Slot

	// ClassName and Styles are the pre-merged class list and inline
	// style string for the slot wrapping this component.
	ClassName string
	Styles    string
}

// ComponentFunc renders one component to an HTML fragment.
type ComponentFunc func(req *ComponentRequest) string

// ComponentRegistry maps component kinds to render functions. All
// registration happens during startup wiring; renders only read.
type ComponentRegistry struct {
	mu    sync.RWMutex
	funcs map[ComponentKind]ComponentFunc
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{funcs: make(map[ComponentKind]ComponentFunc)}
}

// Register binds a render function to a component kind. Unknown kinds
// and duplicate registrations are startup wiring mistakes and are
// rejected.
func (r *ComponentRegistry) Register(kind ComponentKind, fn ComponentFunc) error {
	if !knownKinds[kind] {
		return fmt.Errorf("register component: unknown kind %q", kind)
	}
	if fn == nil {
		return fmt.Errorf("register component %q: nil render func", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[kind]; exists {
		return fmt.Errorf("register component %q: already registered", kind)
	}
	r.funcs[kind] = fn
	return nil
}

// Has reports whether a component kind is registered.
func (r *ComponentRegistry) Has(kind ComponentKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[kind]
	return ok
}

// Render dispatches one component. A missing component or a component
// panic skips the slot with a warning; the rest of the page still
// renders.
func (r *ComponentRegistry) Render(kind ComponentKind, req *ComponentRequest) (out string) {
	r.mu.RLock()
	fn, ok := r.funcs[kind]
	r.mu.RUnlock()

	if !ok {
		log.Printf("WARNING: component %q not registered, skipping slot %s", kind, slotID(req))
		return ""
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("WARNING: component %q panicked rendering slot %s: %v", kind, slotID(req), rec)
			out = ""
		}
	}()

	return fn(req)
}

func slotID(req *ComponentRequest) string {
	if req == nil || req.Slot == nil {
		return "?"
	}
	return req.Slot.ID
}
