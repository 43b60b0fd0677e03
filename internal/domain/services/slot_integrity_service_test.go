package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func integritySlots(slots ...*rendering.Slot) map[string]*rendering.Slot {
	m := make(map[string]*rendering.Slot, len(slots))
	for _, s := range slots {
		m[s.ID] = s
	}
	return m
}

func TestIntegrityCheckCleanLayout(t *testing.T) {
	report := NewSlotIntegrityService().Check(integritySlots(
		&rendering.Slot{ID: "root", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "child", ParentID: "root", Type: rendering.SlotText},
	))
	assert.True(t, report.Clean())
}

func TestIntegrityCheckDanglingParent(t *testing.T) {
	report := NewSlotIntegrityService().Check(integritySlots(
		&rendering.Slot{ID: "orphan", ParentID: "gone", Type: rendering.SlotText},
	))
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"orphan"}, report.DanglingParents)
}

func TestIntegrityCheckParentCycle(t *testing.T) {
	report := NewSlotIntegrityService().Check(integritySlots(
		&rendering.Slot{ID: "a", ParentID: "b", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "b", ParentID: "a", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "ok", Type: rendering.SlotText},
	))
	assert.False(t, report.Clean())
	assert.Len(t, report.CycleMembers, 2)
	assert.NotContains(t, report.CycleMembers, "ok")
}

func TestIntegrityCheckSelfParent(t *testing.T) {
	report := NewSlotIntegrityService().Check(integritySlots(
		&rendering.Slot{ID: "loop", ParentID: "loop", Type: rendering.SlotContainer},
	))
	assert.Equal(t, []string{"loop"}, report.CycleMembers)
}

func TestIntegrityCheckMissingTypeAndUnnamedComponent(t *testing.T) {
	report := NewSlotIntegrityService().Check(integritySlots(
		&rendering.Slot{ID: "untyped"},
		&rendering.Slot{ID: "anon", Type: rendering.SlotComponent},
	))
	assert.Equal(t, []string{"untyped"}, report.MissingTypes)
	assert.Equal(t, []string{"anon"}, report.UnnamedComponents)
	assert.Equal(t, "dangling=0 cycles=0 untyped=1 unnamed=1", report.Summary())
}
