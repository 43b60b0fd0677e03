package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func slotMap(slots ...*rendering.Slot) map[string]*rendering.Slot {
	m := make(map[string]*rendering.Slot, len(slots))
	for i, s := range slots {
		s.Seq = i
		m[s.ID] = s
	}
	return m
}

func childIDs(slots []*rendering.Slot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}

func TestVisibleSortedChildrenOrdersByRowThenCol(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "c", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 1, Col: 0}},
		&rendering.Slot{ID: "a", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 0, Col: 1}},
		&rendering.Slot{ID: "b", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 0, Col: 0}},
	)

	children := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, testPageContext())
	assert.Equal(t, []string{"b", "a", "c"}, childIDs(children))
}

func TestVisibleSortedChildrenSamePositionKeepsAuthoredOrder(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "first", Type: rendering.SlotText},
		&rendering.Slot{ID: "second", Type: rendering.SlotText},
		&rendering.Slot{ID: "third", Type: rendering.SlotText},
	)

	ctx := testPageContext()
	for i := 0; i < 20; i++ {
		children := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx)
		require.Equal(t, []string{"first", "second", "third"}, childIDs(children))
	}
}

func TestVisibleSortedChildrenIsIdempotent(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "x", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 2}},
		&rendering.Slot{ID: "y", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 1}},
		&rendering.Slot{ID: "z", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 1}},
	)

	ctx := testPageContext()
	first := childIDs(VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx))
	second := childIDs(VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx))
	assert.Equal(t, first, second)
}

func TestVisibleSortedChildrenSelectsDirectChildrenOnly(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "root-child", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "nested", ParentID: "root-child", Type: rendering.SlotText},
	)

	children := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, testPageContext())
	assert.Equal(t, []string{"root-child"}, childIDs(children))
}

func TestVisibleSortedChildrenHonorsViewModes(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "grid-only", Type: rendering.SlotText, ViewModes: []string{rendering.ViewModeGrid}},
		&rendering.Slot{ID: "everywhere", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 1}},
	)

	ctx := testPageContext()
	grid := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx)
	assert.Equal(t, []string{"grid-only", "everywhere"}, childIDs(grid))

	list := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeList, ctx)
	assert.Equal(t, []string{"everywhere"}, childIDs(list))
}

func TestVisibleSortedChildrenAppliesConditions(t *testing.T) {
	slots := slotMap(
		&rendering.Slot{ID: "banner", Type: rendering.SlotText, ConditionalDisplay: "settings.show_banner"},
		&rendering.Slot{ID: "body", Type: rendering.SlotText, Position: rendering.GridPosition{Row: 1}},
	)

	ctx := testPageContext()
	ctx.Settings = map[string]any{"show_banner": false}
	children := VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx)
	assert.Equal(t, []string{"body"}, childIDs(children))

	ctx.Settings = map[string]any{"show_banner": true}
	children = VisibleSortedChildren(slots, rendering.RootParentID, rendering.ViewModeGrid, ctx)
	assert.Equal(t, []string{"banner", "body"}, childIDs(children))
}
