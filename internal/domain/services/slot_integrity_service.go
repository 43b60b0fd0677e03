package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// SlotIntegrityReport lists structural problems in an authored slot
// set. The renderer tolerates all of these at runtime; the report
// exists so the editor surface can warn merchants before publishing.
type SlotIntegrityReport struct {
	DanglingParents   []string `json:"danglingParents"`   // slot IDs whose parentId resolves nowhere
	CycleMembers      []string `json:"cycleMembers"`      // slot IDs on a parentId cycle
	MissingTypes      []string `json:"missingTypes"`      // slot IDs without a type
	UnnamedComponents []string `json:"unnamedComponents"` // component slots without a component name
}

// Clean reports whether the slot set has no detected problems.
func (r *SlotIntegrityReport) Clean() bool {
	return len(r.DanglingParents) == 0 && len(r.CycleMembers) == 0 &&
		len(r.MissingTypes) == 0 && len(r.UnnamedComponents) == 0
}

// Summary produces a one-line description for logs.
func (r *SlotIntegrityReport) Summary() string {
	return fmt.Sprintf("dangling=%d cycles=%d untyped=%d unnamed=%d",
		len(r.DanglingParents), len(r.CycleMembers), len(r.MissingTypes), len(r.UnnamedComponents))
}

// SlotIntegrityService validates authored slot sets.
type SlotIntegrityService struct{}

// NewSlotIntegrityService creates a slot integrity service.
func NewSlotIntegrityService() *SlotIntegrityService {
	return &SlotIntegrityService{}
}

// Check walks the slot set and collects structural problems.
func (s *SlotIntegrityService) Check(slots map[string]*rendering.Slot) *SlotIntegrityReport {
	report := &SlotIntegrityReport{}

	for id, slot := range slots {
		if slot.ParentID != rendering.RootParentID {
			if _, ok := slots[slot.ParentID]; !ok {
				report.DanglingParents = append(report.DanglingParents, id)
			}
		}
		if slot.Type == "" {
			report.MissingTypes = append(report.MissingTypes, id)
		}
		if slot.Type == rendering.SlotComponent && slot.ComponentName() == "" {
			report.UnnamedComponents = append(report.UnnamedComponents, id)
		}
	}

	report.CycleMembers = findParentCycles(slots)
	return report
}

// findParentCycles detects parentId chains that loop back on
// themselves. Each slot's chain is followed with a per-walk visited
// set; slots on a loop are reported once.
func findParentCycles(slots map[string]*rendering.Slot) []string {
	onCycle := make(map[string]bool)

	for id := range slots {
		visited := make(map[string]bool)
		current := id
		for current != rendering.RootParentID {
			slot, ok := slots[current]
			if !ok {
				break
			}
			if visited[current] {
				onCycle[current] = true
				break
			}
			visited[current] = true
			current = slot.ParentID
		}
	}

	var members []string
	for id := range onCycle {
		members = append(members, id)
	}
	return members
}
