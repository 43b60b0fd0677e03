package services

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	schema "github.com/DainoStore/dainostore-go/internal/infrastructure/database"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/email"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

var storeIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// Activation walks these steps in order; the polling endpoint reports
// progress against them.
var activationSteps = []string{
	"validating",
	"creating_database",
	"creating_schema",
	"seeding_content",
	"initializing_caches",
	"finalizing",
}

// ProvisioningStatus is one store's live activation progress.
type ProvisioningStatus struct {
	Status      string `json:"status"` // "reserved", "activating", "active", "failed"
	CurrentStep string `json:"currentStep,omitempty"`
	Progress    int    `json:"progress"` // percent
	Error       string `json:"error,omitempty"`
}

// StoreReservation is the input for reserving a new store.
type StoreReservation struct {
	StoreID       string   `json:"storeId"`
	Domains       []string `json:"domains,omitempty"`
	AdminEmail    string   `json:"adminEmail"`
	AdminPassword string   `json:"adminPassword"`
	BaseURL       string   `json:"baseUrl"`
}

// Capacity reports whether the platform can take another store.
type Capacity struct {
	ActiveStores int  `json:"activeStores"`
	MaxStores    int  `json:"maxStores"`
	Available    bool `json:"available"`
}

// ProvisioningService handles the store lifecycle: reservation with an
// emailed activation link, token-protected activation that builds the
// store database in the background, and progress polling.
type ProvisioningService struct {
	storeManager *tenant.Manager
	cacheManager *manager.Manager
	email        email.Service
	logger       *logging.ChanneledLogger

	mu       sync.RWMutex
	statuses map[string]*ProvisioningStatus
}

// NewProvisioningService creates a new provisioning service. The email
// service may be nil in development; reservations then skip the mail.
func NewProvisioningService(storeManager *tenant.Manager, cacheManager *manager.Manager, emailService email.Service, logger *logging.ChanneledLogger) *ProvisioningService {
	return &ProvisioningService{
		storeManager: storeManager,
		cacheManager: cacheManager,
		email:        emailService,
		logger:       logger,
		statuses:     make(map[string]*ProvisioningStatus),
	}
}

// GetCapacity returns the current store headroom.
func (s *ProvisioningService) GetCapacity() (*Capacity, error) {
	active, err := s.storeManager.GetActiveStoreCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count active stores: %w", err)
	}
	return &Capacity{
		ActiveStores: active,
		MaxStores:    config.MaxStores,
		Available:    active < config.MaxStores,
	}, nil
}

// ReserveStore registers a store in reserved state and emails the
// activation link. The store serves nothing until activated.
func (s *ProvisioningService) ReserveStore(reservation *StoreReservation) error {
	if !storeIDPattern.MatchString(reservation.StoreID) {
		return fmt.Errorf("invalid store id: %s", reservation.StoreID)
	}
	if reservation.AdminEmail == "" || reservation.AdminPassword == "" {
		return fmt.Errorf("admin email and password are required")
	}

	capacity, err := s.GetCapacity()
	if err != nil {
		return err
	}
	if !capacity.Available {
		return fmt.Errorf("platform is at capacity (%d stores)", capacity.MaxStores)
	}

	if existing, err := tenant.LoadStoreConfig(reservation.StoreID); err == nil && existing != nil {
		return fmt.Errorf("store id already taken: %s", reservation.StoreID)
	}

	jwtSecret, err := security.GenerateSecureKey(32)
	if err != nil {
		return fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	activationToken, err := security.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate activation token: %w", err)
	}
	passwordHash, err := security.HashPassword(reservation.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	cfg := &tenant.Config{
		StoreID:         reservation.StoreID,
		Domains:         reservation.Domains,
		Status:          "reserved",
		DatabaseType:    "sqlite3",
		JWTSecret:       jwtSecret,
		AdminEmail:      reservation.AdminEmail,
		AdminPassword:   passwordHash,
		ActivationToken: activationToken,
		ReservedAt:      &now,
		BaseURL:         reservation.BaseURL,
	}
	if err := tenant.SaveStoreConfig(cfg); err != nil {
		return fmt.Errorf("failed to save store config: %w", err)
	}
	if err := tenant.RegisterStore(reservation.StoreID, "reserved", reservation.Domains); err != nil {
		return fmt.Errorf("failed to register store: %w", err)
	}

	s.setStatus(reservation.StoreID, &ProvisioningStatus{Status: "reserved"})
	s.logger.LogStoreOperation("reserve", reservation.StoreID, true, 0, nil)

	if s.email != nil {
		activationURL := fmt.Sprintf("%s/api/v1/provisioning/activate?storeId=%s&token=%s",
			reservation.BaseURL, reservation.StoreID, activationToken)
		if err := s.email.SendStoreActivationEmail(reservation.AdminEmail, reservation.StoreID, activationURL); err != nil {
			s.logger.Email().Error("Failed to send activation email",
				"error", err.Error(), "storeId", reservation.StoreID)
		}
	}
	return nil
}

// Activate validates the token and kicks off background provisioning.
// Progress is observable through GetStatus.
func (s *ProvisioningService) Activate(storeID, token string) error {
	cfg, err := tenant.LoadStoreConfig(storeID)
	if err != nil {
		return fmt.Errorf("store not found: %s", storeID)
	}
	if cfg.Status != "reserved" {
		return fmt.Errorf("store is not awaiting activation: %s", storeID)
	}
	if cfg.ActivationToken == "" || cfg.ActivationToken != token {
		return fmt.Errorf("invalid activation token")
	}
	if cfg.ReservedAt != nil && time.Since(*cfg.ReservedAt) > config.ProvisionTokenTTL {
		return fmt.Errorf("activation token expired")
	}

	s.setStatus(storeID, &ProvisioningStatus{Status: "activating", CurrentStep: activationSteps[0]})
	go s.provision(cfg)
	return nil
}

// GetStatus returns live provisioning progress, falling back to the
// registry status when this process never touched the store.
func (s *ProvisioningService) GetStatus(storeID string) *ProvisioningStatus {
	s.mu.RLock()
	status, found := s.statuses[storeID]
	s.mu.RUnlock()
	if found {
		copied := *status
		return &copied
	}

	cfg, err := tenant.LoadStoreConfig(storeID)
	if err != nil {
		return &ProvisioningStatus{Status: "unknown"}
	}
	result := &ProvisioningStatus{Status: cfg.Status}
	if cfg.Status == "active" {
		result.Progress = 100
	}
	return result
}

// provision runs the activation steps. Any failure leaves the store in
// failed state with the error recorded for the polling endpoint.
func (s *ProvisioningService) provision(cfg *tenant.Config) {
	storeID := cfg.StoreID
	fail := func(step string, err error) {
		s.setStatus(storeID, &ProvisioningStatus{Status: "failed", CurrentStep: step, Error: err.Error()})
		s.logger.LogError(logging.ChannelStore, "provision", err, storeID, map[string]any{"step": step})
	}

	s.step(storeID, 0)
	cfg.Status = "activating"
	if err := tenant.UpdateRegistryStatus(storeID, "activating", cfg.DatabaseType); err != nil {
		fail(activationSteps[0], err)
		return
	}

	s.step(storeID, 1)
	db, err := tenant.NewDatabase(cfg)
	if err != nil {
		fail(activationSteps[1], err)
		return
	}

	s.step(storeID, 2)
	creator := schema.NewTableCreator()
	if err := creator.CreateSchema(db.Conn); err != nil {
		fail(activationSteps[2], err)
		return
	}

	s.step(storeID, 3)
	if err := creator.SeedInitialContent(db.Conn); err != nil {
		fail(activationSteps[3], err)
		return
	}

	s.step(storeID, 4)
	s.cacheManager.InitializeStore(storeID)

	s.step(storeID, 5)
	cfg.Status = "active"
	cfg.ActivationToken = ""
	if err := tenant.SaveStoreConfig(cfg); err != nil {
		fail(activationSteps[5], err)
		return
	}
	if err := tenant.UpdateRegistryStatus(storeID, "active", cfg.DatabaseType); err != nil {
		fail(activationSteps[5], err)
		return
	}

	s.setStatus(storeID, &ProvisioningStatus{Status: "active", Progress: 100})
	s.logger.LogStoreOperation("activate", storeID, true, 0, nil)

	if s.email != nil && cfg.AdminEmail != "" {
		storefrontURL := cfg.BaseURL
		adminURL := cfg.BaseURL + "/admin"
		if err := s.email.SendStoreReadyEmail(cfg.AdminEmail, storeID, storefrontURL, adminURL); err != nil {
			s.logger.Email().Error("Failed to send store ready email",
				"error", err.Error(), "storeId", storeID)
		}
	}
}

// step publishes progress for one activation step and applies the
// configured pacing delay so status polling sees each step.
func (s *ProvisioningService) step(storeID string, index int) {
	s.setStatus(storeID, &ProvisioningStatus{
		Status:      "activating",
		CurrentStep: activationSteps[index],
		Progress:    index * 100 / len(activationSteps),
	})
	if index > 0 {
		time.Sleep(config.ActivationStepDelay)
	}
}

func (s *ProvisioningService) setStatus(storeID string, status *ProvisioningStatus) {
	s.mu.Lock()
	s.statuses[storeID] = status
	s.mu.Unlock()
}
