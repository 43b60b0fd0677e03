package templates

import (
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	elements "github.com/DainoStore/dainostore-go/internal/presentation/templates/elements"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

var slotTemplates = template.Must(template.New("slotRenderer").Parse(
	`{{define "slotDiv"}}<div id="slot-{{.ID}}" class="{{.Class}}"{{if .Style}} style="{{.Style}}"{{end}}>{{end}}` +
		`{{define "placeholderDiv"}}<div id="slot-{{.ID}}" class="slot-placeholder" data-slot-type="{{.Type}}">{{end}}`,
))

type slotDivData struct {
	ID    string
	Class string
	Style template.CSS
}

type placeholderDivData struct {
	ID   string
	Type string
}

// SlotRenderer walks a published slot layout and produces the page
// HTML. It owns no state between renders; everything flows through
// the per-render state struct.
type SlotRenderer struct {
	registry *ComponentRegistry
	resolver *VariableResolver
}

// NewSlotRenderer creates a slot renderer around a component registry
// and variable resolver.
func NewSlotRenderer(registry *ComponentRegistry, resolver *VariableResolver) *SlotRenderer {
	return &SlotRenderer{registry: registry, resolver: resolver}
}

// renderState is the per-render working set. The visited map guards
// against parent cycles in untrusted layout payloads.
type renderState struct {
	layout  *rendering.SlotLayout
	page    *rendering.PageContext
	vars    *rendering.VariableContext
	visited map[string]bool
}

// RenderPage renders every visible root slot of a layout in authored
// order. The variable context is built once per render pass and
// shared by all slots.
func (sr *SlotRenderer) RenderPage(layout *rendering.SlotLayout, page *rendering.PageContext) string {
	if layout == nil || len(layout.Slots) == 0 {
		return ""
	}

	st := &renderState{
		layout:  layout,
		page:    page,
		vars:    sr.resolver.BuildVariableContext(page),
		visited: make(map[string]bool),
	}

	var html strings.Builder
	for _, slot := range VisibleSortedChildren(layout.Slots, rendering.RootParentID, page.ViewMode, page) {
		html.WriteString(sr.renderSlot(st, slot))
	}
	return html.String()
}

// RenderSlotTree renders one slot and its subtree against a fresh
// variable context. Used for fragment responses where a single
// component re-renders without the full page.
func (sr *SlotRenderer) RenderSlotTree(layout *rendering.SlotLayout, page *rendering.PageContext, slotID string) string {
	if layout == nil {
		return ""
	}
	slot, ok := layout.Slots[slotID]
	if !ok {
		return ""
	}

	st := &renderState{
		layout:  layout,
		page:    page,
		vars:    sr.resolver.BuildVariableContext(page),
		visited: make(map[string]bool),
	}
	return sr.renderSlot(st, slot)
}

func (sr *SlotRenderer) renderSlot(st *renderState, slot *rendering.Slot) string {
	if slot == nil {
		return ""
	}
	if st.visited[slot.ID] {
		log.Printf("WARNING: slot cycle detected at %s in layout %s, stopping descent", slot.ID, st.layout.ID)
		return ""
	}
	st.visited[slot.ID] = true

	// Certain well-known slot IDs dispatch as components regardless of
	// their declared type. Layout editors emitted these as plain
	// containers historically.
	if kind, ok := reservedSlotKinds[slot.ID]; ok {
		return sr.renderComponent(st, slot, kind)
	}

	switch slot.Type {
	case rendering.SlotContainer, rendering.SlotGrid, rendering.SlotFlex:
		return sr.renderStructural(st, slot)
	case rendering.SlotText:
		return elements.RenderText(slot, SubstituteVariables(slot.Content, st.vars.Values))
	case rendering.SlotImage:
		return elements.RenderImage(slot, SubstituteVariables(slot.Content, st.vars.Values))
	case rendering.SlotButton:
		return elements.RenderButton(slot, SubstituteVariables(slot.Content, st.vars.Values))
	case rendering.SlotCmsBlock:
		return sr.renderComponent(st, slot, KindCmsBlock)
	case rendering.SlotBreadcrumbs:
		return sr.renderComponent(st, slot, KindBreadcrumbs)
	case rendering.SlotComponent:
		name := slot.ComponentName()
		if name == "" {
			log.Printf("WARNING: component slot %s names no component, skipping", slot.ID)
			return ""
		}
		return sr.renderComponent(st, slot, ComponentKind(name))
	default:
		return sr.renderPlaceholder(st, slot)
	}
}

// reservedSlotKinds maps historically well-known slot IDs to their
// component kinds.
var reservedSlotKinds = map[string]ComponentKind{
	"product_grid":  KindProductGrid,
	"search_bar":    KindSearchBar,
	"sort_selector": KindSortSelector,
}

func (sr *SlotRenderer) renderStructural(st *renderState, slot *rendering.Slot) string {
	var html strings.Builder

	classes := SlotClasses(slot, structuralDefaults(slot.Type))
	sr.executeTemplate(&html, "slotDiv", slotDivData{
		ID:    slot.ID,
		Class: classes,
		Style: template.CSS(SlotInlineStyles(slot)),
	})

	children := VisibleSortedChildren(st.layout.Slots, slot.ID, st.page.ViewMode, st.page)
	for _, child := range children {
		if slot.Type == rendering.SlotGrid {
			html.WriteString(sr.renderGridCell(st, child))
			continue
		}
		html.WriteString(sr.renderSlot(st, child))
	}

	html.WriteString(`</div>`)
	return html.String()
}

// renderGridCell wraps a grid child in its resolved column span. A
// per-view class, when authored, replaces the computed col-span class
// outright.
func (sr *SlotRenderer) renderGridCell(st *renderState, child *rendering.Slot) string {
	cols, class := child.ColSpan.Resolve(st.page.ViewMode, config.DefaultGridColumns)
	if class == "" {
		class = fmt.Sprintf("col-span-%d", cols)
	}
	if child.ParentClassName != "" {
		class = class + " " + child.ParentClassName
	}

	var html strings.Builder
	sr.executeTemplate(&html, "slotDiv", slotDivData{ID: child.ID + "-cell", Class: class})
	html.WriteString(sr.renderSlot(st, child))
	html.WriteString(`</div>`)
	return html.String()
}

func structuralDefaults(t rendering.SlotType) string {
	switch t {
	case rendering.SlotGrid:
		return fmt.Sprintf("grid grid-cols-%d gap-4", config.DefaultGridColumns)
	case rendering.SlotFlex:
		return "flex flex-wrap gap-4"
	default:
		return ""
	}
}

func (sr *SlotRenderer) renderComponent(st *renderState, slot *rendering.Slot, kind ComponentKind) string {
	return sr.registry.Render(kind, &ComponentRequest{
		Slot:      slot,
		Page:      st.page,
		Vars:      st.vars,
		ViewMode:  st.page.ViewMode,
		AllSlots:  st.layout.Slots,
		ClassName: SlotClasses(slot),
		Styles:    SlotInlineStyles(slot),
	})
}

// renderPlaceholder keeps unknown slot types visible instead of
// dropping their subtree. The editor ships new types faster than the
// storefront learns to render them.
func (sr *SlotRenderer) renderPlaceholder(st *renderState, slot *rendering.Slot) string {
	log.Printf("WARNING: unknown slot type %q on slot %s, rendering placeholder", slot.Type, slot.ID)

	var html strings.Builder
	sr.executeTemplate(&html, "placeholderDiv", placeholderDivData{ID: slot.ID, Type: string(slot.Type)})
	for _, child := range VisibleSortedChildren(st.layout.Slots, slot.ID, st.page.ViewMode, st.page) {
		html.WriteString(sr.renderSlot(st, child))
	}
	html.WriteString(`</div>`)
	return html.String()
}

func (sr *SlotRenderer) executeTemplate(sb *strings.Builder, name string, data interface{}) {
	if err := slotTemplates.ExecuteTemplate(sb, name, data); err != nil {
		log.Printf("ERROR: Failed to execute slot template '%s': %v", name, err)
		sb.WriteString("<!-- template error -->")
	}
}
