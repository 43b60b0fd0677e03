package templates

import (
	"fmt"
	"log"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/domain/services"
)

// ParseLayoutPayload decodes an editor slot payload and runs the
// integrity check over the result. Integrity findings are logged, not
// fatal: the renderer tolerates dangling parents and cycles on its
// own, the warnings exist so broken layouts surface in store logs.
func ParseLayoutPayload(layoutID string, payload []byte) (map[string]*rendering.Slot, error) {
	slots, err := rendering.ParseSlots(payload)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", layoutID, err)
	}

	report := services.NewSlotIntegrityService().Check(slots)
	if !report.Clean() {
		log.Printf("WARNING: layout %s has integrity issues: %s", layoutID, report.Summary())
	}

	return slots, nil
}
