package templates

import (
	"strings"

	components "github.com/DainoStore/dainostore-go/internal/presentation/templates/elements/components"
)

// NewDefaultRegistry builds the registry with every built-in
// storefront component bound. Registration failures here are wiring
// bugs and abort startup.
func NewDefaultRegistry() *ComponentRegistry {
	registry := NewComponentRegistry()

	mustRegister := func(kind ComponentKind, fn ComponentFunc) {
		if err := registry.Register(kind, fn); err != nil {
			panic(err)
		}
	}

	mustRegister(KindProductGrid, func(req *ComponentRequest) string {
		return components.RenderProductGrid(req.Vars, req.ViewMode, req.ClassName)
	})
	mustRegister(KindPagination, func(req *ComponentRequest) string {
		return components.RenderPagination(req.Page, req.Vars.Pagination, req.ClassName)
	})
	mustRegister(KindLayeredNavigation, func(req *ComponentRequest) string {
		return components.RenderLayeredNavigation(req.Page, req.Vars.Filters, req.ClassName)
	})
	mustRegister(KindActiveFilters, func(req *ComponentRequest) string {
		return components.RenderActiveFilters(req.Page, req.Vars.Filters, req.ClassName)
	})
	mustRegister(KindBreadcrumbs, func(req *ComponentRequest) string {
		return components.RenderBreadcrumbs(req.Page, styledFromSibling(req))
	})
	mustRegister(KindSearchBar, func(req *ComponentRequest) string {
		return components.RenderSearchBar(req.Page, req.ClassName)
	})
	mustRegister(KindSortSelector, func(req *ComponentRequest) string {
		return components.RenderSortSelector(req.Page, req.ClassName)
	})
	mustRegister(KindCmsBlock, func(req *ComponentRequest) string {
		content := SubstituteVariables(req.Slot.Content, req.Vars.Values)
		return components.RenderCmsBlock(req.Slot.ID, content, req.ClassName)
	})

	return registry
}

// styledFromSibling merges in the class list of another slot when the
// component's metadata names one via styleFrom. Breadcrumbs use this
// to match the styling of the header block they sit under.
func styledFromSibling(req *ComponentRequest) string {
	class := req.ClassName
	name, ok := req.Slot.Metadata["styleFrom"].(string)
	if !ok || name == "" {
		return class
	}
	donor, ok := req.AllSlots[name]
	if !ok {
		return class
	}
	return strings.TrimSpace(strings.TrimSpace(class) + " " + SlotClasses(donor))
}
