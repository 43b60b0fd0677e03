package templates

import (
	"sort"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// VisibleSortedChildren selects the renderable children of one parent
// slot: direct children only, conditionalDisplay evaluated against the
// page context, view-mode participation checked, then a stable sort by
// grid row and column so same-position slots keep authoring order.
func VisibleSortedChildren(slots map[string]*rendering.Slot, parentID, viewMode string, ctx *rendering.PageContext) []*rendering.Slot {
	var children []*rendering.Slot
	for _, slot := range slots {
		if slot == nil || slot.ParentID != parentID {
			continue
		}
		if !slot.VisibleInViewMode(viewMode) {
			continue
		}
		if !EvaluateCondition(slot.ConditionalDisplay, ctx) {
			continue
		}
		children = append(children, slot)
	}

	// Map iteration order is random; restore authoring order before
	// the positional sort so the overall ordering is deterministic.
	sort.Slice(children, func(i, j int) bool {
		if children[i].Seq != children[j].Seq {
			return children[i].Seq < children[j].Seq
		}
		return children[i].ID < children[j].ID
	})
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Position.Row != children[j].Position.Row {
			return children[i].Position.Row < children[j].Position.Row
		}
		return children[i].Position.Col < children[j].Position.Col
	})

	return children
}
