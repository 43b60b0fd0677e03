package services

import (
	"fmt"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	domainServices "github.com/DainoStore/dainostore-go/internal/domain/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/messaging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Page types a layout can target.
var knownPageTypes = map[string]bool{
	"category": true,
	"product":  true,
	"home":     true,
}

// LayoutService manages slot layouts authored by the visual editor:
// draft CRUD, publishing, and the fragment invalidation that keeps
// rendered pages in step with the published layout.
type LayoutService struct {
	integrity   *domainServices.SlotIntegrityService
	broadcaster messaging.Broadcaster
}

// NewLayoutService creates a new layout service.
func NewLayoutService(integrity *domainServices.SlotIntegrityService, broadcaster messaging.Broadcaster) *LayoutService {
	return &LayoutService{integrity: integrity, broadcaster: broadcaster}
}

// GetLayout returns one layout by ID, nil when absent.
func (s *LayoutService) GetLayout(storeCtx *tenant.Context, id string) (*rendering.SlotLayout, error) {
	layout, err := storeCtx.LayoutRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	return layout, nil
}

// GetPublishedLayout returns the live layout for a page type, nil when
// the store has not published one yet.
func (s *LayoutService) GetPublishedLayout(storeCtx *tenant.Context, pageType string) (*rendering.SlotLayout, error) {
	layout, err := storeCtx.LayoutRepo().FindPublished(storeCtx.StoreID, pageType)
	if err != nil {
		return nil, fmt.Errorf("failed to get published layout: %w", err)
	}
	return layout, nil
}

// ListLayouts returns every layout, drafts included.
func (s *LayoutService) ListLayouts(storeCtx *tenant.Context) ([]*rendering.SlotLayout, error) {
	layouts, err := storeCtx.LayoutRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	return layouts, nil
}

// CreateLayout stores a new draft from a raw editor payload. The
// payload must parse and pass integrity checks before it is accepted.
func (s *LayoutService) CreateLayout(storeCtx *tenant.Context, pageType, name string, payload []byte) (*rendering.SlotLayout, error) {
	slots, err := s.parseAndCheck(storeCtx, payload)
	if err != nil {
		return nil, err
	}
	if !knownPageTypes[pageType] {
		return nil, fmt.Errorf("unknown page type: %s", pageType)
	}

	layout := &rendering.SlotLayout{
		ID:       security.GenerateULID(),
		PageType: pageType,
		Name:     name,
		Slots:    slots,
		Created:  time.Now().UTC(),
	}
	if err := storeCtx.LayoutRepo().Store(storeCtx.StoreID, layout); err != nil {
		return nil, fmt.Errorf("failed to create layout: %w", err)
	}
	return layout, nil
}

// UpdateLayout replaces a draft's name and slot payload. Updating a
// published layout re-renders every page that uses it.
func (s *LayoutService) UpdateLayout(storeCtx *tenant.Context, id, name string, payload []byte) (*rendering.SlotLayout, error) {
	layout, err := storeCtx.LayoutRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("layout not found: %s", id)
	}

	slots, err := s.parseAndCheck(storeCtx, payload)
	if err != nil {
		return nil, err
	}
	if name != "" {
		layout.Name = name
	}
	layout.Slots = slots

	if err := storeCtx.LayoutRepo().Update(storeCtx.StoreID, layout); err != nil {
		return nil, fmt.Errorf("failed to update layout: %w", err)
	}

	if layout.Published {
		s.afterPublishedChange(storeCtx, layout)
	}
	return layout, nil
}

// Publish makes a layout the live one for its page type and retires
// the previous holder. The swap is what shoppers see, so cached
// fragments for the page type are dropped when invalidate-on-publish
// is enabled.
func (s *LayoutService) Publish(storeCtx *tenant.Context, id string) (*rendering.SlotLayout, error) {
	repo := storeCtx.LayoutRepo()
	layout, err := repo.FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("layout not found: %s", id)
	}
	if report := s.integrity.Check(layout.Slots); !report.Clean() {
		return nil, fmt.Errorf("layout failed integrity check: %s", report.Summary())
	}

	previous, err := repo.FindPublished(storeCtx.StoreID, layout.PageType)
	if err != nil {
		return nil, fmt.Errorf("failed to load published layout: %w", err)
	}
	if previous != nil && previous.ID != layout.ID {
		previous.Published = false
		if err := repo.Update(storeCtx.StoreID, previous); err != nil {
			return nil, fmt.Errorf("failed to retire published layout: %w", err)
		}
	}

	layout.Published = true
	if err := repo.Update(storeCtx.StoreID, layout); err != nil {
		return nil, fmt.Errorf("failed to publish layout: %w", err)
	}

	s.afterPublishedChange(storeCtx, layout)
	storeCtx.Logger.Render().Info("Layout published",
		"layoutId", layout.ID, "pageType", layout.PageType, "storeId", storeCtx.StoreID)
	return layout, nil
}

// Unpublish takes a layout offline, leaving its page type without a
// live layout.
func (s *LayoutService) Unpublish(storeCtx *tenant.Context, id string) error {
	repo := storeCtx.LayoutRepo()
	layout, err := repo.FindByID(storeCtx.StoreID, id)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	if layout == nil {
		return fmt.Errorf("layout not found: %s", id)
	}
	if !layout.Published {
		return nil
	}

	layout.Published = false
	if err := repo.Update(storeCtx.StoreID, layout); err != nil {
		return fmt.Errorf("failed to unpublish layout: %w", err)
	}

	s.afterPublishedChange(storeCtx, layout)
	return nil
}

// DeleteLayout removes a layout. Published layouts must be unpublished
// first so a page type never loses its live layout by accident.
func (s *LayoutService) DeleteLayout(storeCtx *tenant.Context, id string) error {
	layout, err := storeCtx.LayoutRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	if layout == nil {
		return nil
	}
	if layout.Published {
		return fmt.Errorf("cannot delete published layout: %s", id)
	}

	if err := storeCtx.LayoutRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	return nil
}

// CheckIntegrity runs the editor-facing validation without persisting
// anything, so the admin UI can lint drafts before save.
func (s *LayoutService) CheckIntegrity(payload []byte) (*domainServices.SlotIntegrityReport, error) {
	slots, err := rendering.ParseSlots(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse slot payload: %w", err)
	}
	return s.integrity.Check(slots), nil
}

func (s *LayoutService) parseAndCheck(storeCtx *tenant.Context, payload []byte) (map[string]*rendering.Slot, error) {
	slots, err := rendering.ParseSlots(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse slot payload: %w", err)
	}
	if report := s.integrity.Check(slots); !report.Clean() {
		storeCtx.Logger.Render().Warn("Slot payload rejected",
			"storeId", storeCtx.StoreID, "problems", report.Summary())
		return nil, fmt.Errorf("slot payload failed integrity check: %s", report.Summary())
	}
	return slots, nil
}

func (s *LayoutService) afterPublishedChange(storeCtx *tenant.Context, layout *rendering.SlotLayout) {
	if config.InvalidateOnPublish {
		storeCtx.CacheManager.InvalidateByDependency(storeCtx.StoreID, "layout:"+layout.ID)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastLayoutUpdate(storeCtx.StoreID, layout.PageType, layout.ID)
	}
}
