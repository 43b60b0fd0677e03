// Package rendering defines the slot tree data structures consumed by
// the storefront renderer. Slot definitions originate from the visual
// layout editor and are not fully trusted at render time.
package rendering

import (
	"encoding/json"
	"time"
)

// SlotType identifies how a slot is rendered.
type SlotType string

const (
	SlotContainer   SlotType = "container"
	SlotGrid        SlotType = "grid"
	SlotFlex        SlotType = "flex"
	SlotText        SlotType = "text"
	SlotImage       SlotType = "image"
	SlotButton      SlotType = "button"
	SlotComponent   SlotType = "component"
	SlotCmsBlock    SlotType = "cms_block"
	SlotBreadcrumbs SlotType = "breadcrumbs"
)

// RootParentID is the parentId sentinel for top-level slots.
const RootParentID = ""

// IsStructural reports whether the slot type recurses into children.
func (t SlotType) IsStructural() bool {
	return t == SlotContainer || t == SlotGrid || t == SlotFlex
}

// GridPosition places a slot among its siblings. Row is the primary
// sort key, Col the secondary.
type GridPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Slot is a single node in a page's declarative layout tree.
type Slot struct {
	ID              string            `json:"id"`
	ParentID        string            `json:"parentId,omitempty"`
	Type            SlotType          `json:"type"`
	Component       string            `json:"component,omitempty"`
	Content         string            `json:"content,omitempty"`
	ClassName       string            `json:"className,omitempty"`
	ParentClassName string            `json:"parentClassName,omitempty"`
	Styles          map[string]string `json:"styles,omitempty"`
	Position        GridPosition      `json:"position"`
	ColSpan         ColSpan           `json:"colSpan,omitempty"`
	// ViewModes lists the view modes the slot participates in.
	// Empty means all modes.
	ViewModes []string `json:"viewModes,omitempty"`
	// ConditionalDisplay is a dot-path into the page context; absent
	// paths fail open (slot shown), explicit falsy values hide it.
	ConditionalDisplay string         `json:"conditionalDisplay,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`

	// Seq is the slot's position in the authored payload, recorded at
	// parse time. It breaks ties between slots sharing a grid position.
	Seq int `json:"-"`
}

// ComponentName resolves the registered component for component-type
// slots. The component field is primary; metadata.component is kept as
// a fallback for older slot definitions.
func (s *Slot) ComponentName() string {
	if s.Component != "" {
		return s.Component
	}
	if s.Metadata != nil {
		if name, ok := s.Metadata["component"].(string); ok {
			return name
		}
	}
	return ""
}

// VisibleInViewMode reports whether the slot participates in the given
// view mode. Slots with no view-mode list are visible everywhere.
func (s *Slot) VisibleInViewMode(viewMode string) bool {
	if len(s.ViewModes) == 0 {
		return true
	}
	for _, mode := range s.ViewModes {
		if mode == viewMode {
			return true
		}
	}
	return false
}

// SlotLayout is one stored slot set for a page type, authored by the
// external editor and delivered as a JSON payload.
type SlotLayout struct {
	ID        string           `json:"id"`
	PageType  string           `json:"pageType"` // "category", "product", "home"
	Name      string           `json:"name"`
	Published bool             `json:"published"`
	Slots     map[string]*Slot `json:"slots"`
	Created   time.Time        `json:"created"`
	Changed   *time.Time       `json:"changed,omitempty"`
}

// ParseSlots decodes an editor payload into a slot map keyed by slot
// ID. Slots without an ID are dropped rather than rejected; the
// payload cannot be fully trusted.
func ParseSlots(payload []byte) (map[string]*Slot, error) {
	var raw []*Slot
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	slots := make(map[string]*Slot, len(raw))
	for i, s := range raw {
		if s == nil || s.ID == "" {
			continue
		}
		s.Seq = i
		slots[s.ID] = s
	}
	return slots, nil
}
