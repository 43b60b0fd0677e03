package services

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// A/B test lifecycle states.
const (
	AbTestStatusDraft     = "draft"
	AbTestStatusRunning   = "running"
	AbTestStatusCompleted = "completed"
)

// AbTestService runs weighted experiments. Variant assignment is
// deterministic per session so a shopper sees the same arm on every
// page view without any assignment storage beyond the session itself.
type AbTestService struct{}

// NewAbTestService creates a new A/B test service.
func NewAbTestService() *AbTestService {
	return &AbTestService{}
}

// GetTest returns one test by ID, nil when absent.
func (s *AbTestService) GetTest(storeCtx *tenant.Context, id string) (*catalog.AbTest, error) {
	test, err := storeCtx.AbTestRepo().FindByID(storeCtx.StoreID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ab test: %w", err)
	}
	return test, nil
}

// ListTests returns every test regardless of status.
func (s *AbTestService) ListTests(storeCtx *tenant.Context) ([]*catalog.AbTest, error) {
	tests, err := storeCtx.AbTestRepo().FindAll(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ab tests: %w", err)
	}
	return tests, nil
}

// CreateTest stores a new experiment in draft state.
func (s *AbTestService) CreateTest(storeCtx *tenant.Context, test *catalog.AbTest) error {
	if test.Name == "" {
		return fmt.Errorf("ab test name is required")
	}
	if err := validateVariants(test.Variants); err != nil {
		return err
	}
	if test.ID == "" {
		test.ID = security.GenerateULID()
	}
	for _, v := range test.Variants {
		if v.ID == "" {
			v.ID = security.GenerateULID()
		}
	}
	test.Status = AbTestStatusDraft
	if test.Created.IsZero() {
		test.Created = time.Now().UTC()
	}

	if err := storeCtx.AbTestRepo().Store(storeCtx.StoreID, test); err != nil {
		return fmt.Errorf("failed to create ab test: %w", err)
	}
	return nil
}

// UpdateTest persists test changes, including status transitions.
func (s *AbTestService) UpdateTest(storeCtx *tenant.Context, test *catalog.AbTest) error {
	if test.ID == "" {
		return fmt.Errorf("ab test id is required")
	}
	switch test.Status {
	case AbTestStatusDraft, AbTestStatusRunning, AbTestStatusCompleted:
	default:
		return fmt.Errorf("unknown ab test status: %s", test.Status)
	}
	if err := validateVariants(test.Variants); err != nil {
		return err
	}

	if err := storeCtx.AbTestRepo().Update(storeCtx.StoreID, test); err != nil {
		return fmt.Errorf("failed to update ab test: %w", err)
	}
	return nil
}

// DeleteTest removes an experiment and its counters.
func (s *AbTestService) DeleteTest(storeCtx *tenant.Context, id string) error {
	if err := storeCtx.AbTestRepo().Delete(storeCtx.StoreID, id); err != nil {
		return fmt.Errorf("failed to delete ab test: %w", err)
	}
	return nil
}

// AssignVariants gives the session an arm in every running test it has
// not entered yet, recording one impression per fresh assignment. The
// session is persisted when anything changed.
func (s *AbTestService) AssignVariants(storeCtx *tenant.Context, session *types.SessionData) error {
	tests, err := storeCtx.AbTestRepo().FindRunning(storeCtx.StoreID)
	if err != nil {
		return fmt.Errorf("failed to find running ab tests: %w", err)
	}
	if len(tests) == 0 {
		return nil
	}

	if session.AbVariants == nil {
		session.AbVariants = make(map[string]string)
	}
	changed := false
	for _, test := range tests {
		if _, assigned := session.AbVariants[test.ID]; assigned {
			continue
		}
		variant := pickVariant(test, session.SessionID)
		if variant == nil {
			continue
		}
		session.AbVariants[test.ID] = variant.ID
		changed = true

		if err := storeCtx.AbTestRepo().RecordImpression(storeCtx.StoreID, test.ID, variant.ID); err != nil {
			storeCtx.Logger.Analytics().Error("Failed to record ab impression",
				"error", err.Error(), "testId", test.ID, "variantId", variant.ID)
		}
	}

	if changed {
		storeCtx.CacheManager.SetSession(storeCtx.StoreID, session)
	}
	return nil
}

// RecordConversion credits the session's assigned arm of a test.
// Sessions that never entered the test convert nothing.
func (s *AbTestService) RecordConversion(storeCtx *tenant.Context, session *types.SessionData, testID string) error {
	variantID, assigned := session.AbVariants[testID]
	if !assigned {
		return nil
	}
	if err := storeCtx.AbTestRepo().RecordConversion(storeCtx.StoreID, testID, variantID); err != nil {
		return fmt.Errorf("failed to record ab conversion: %w", err)
	}
	return nil
}

// pickVariant maps a session hash onto the cumulative weight range.
// The same session and test always land on the same arm.
func pickVariant(test *catalog.AbTest, sessionID string) *catalog.AbTestVariant {
	total := 0
	for _, v := range test.Variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total == 0 {
		return nil
	}

	h := fnv.New32a()
	h.Write([]byte(sessionID))
	h.Write([]byte(":"))
	h.Write([]byte(test.ID))
	bucket := int(h.Sum32() % uint32(total))

	for _, v := range test.Variants {
		if v.Weight <= 0 {
			continue
		}
		if bucket < v.Weight {
			return v
		}
		bucket -= v.Weight
	}
	return nil
}

func validateVariants(variants []*catalog.AbTestVariant) error {
	if len(variants) < 2 {
		return fmt.Errorf("ab test needs at least two variants")
	}
	total := 0
	for _, v := range variants {
		if v == nil || v.Name == "" {
			return fmt.Errorf("ab test variant name is required")
		}
		if v.Weight < 0 {
			return fmt.Errorf("ab test variant weight cannot be negative")
		}
		total += v.Weight
	}
	if total == 0 {
		return fmt.Errorf("ab test variant weights must sum above zero")
	}
	return nil
}
