// Package container wires the application's service graph. Services
// are stateless singletons; per-request state travels in the store
// context they receive on every call.
package container

import (
	"github.com/DainoStore/dainostore-go/internal/application/services"
	domainServices "github.com/DainoStore/dainostore-go/internal/domain/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/manager"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/email"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/media"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/messaging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/monitoring"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/internal/presentation/templates"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Container holds every singleton the HTTP layer needs.
type Container struct {
	StoreManager *tenant.Manager
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
	StoreMonitor *monitoring.StoreMonitor

	Broadcaster      messaging.Broadcaster
	AdminBroadcaster *messaging.AdminBroadcaster
	EmailService     email.Service

	SessionService      *services.SessionService
	CatalogService      *services.CatalogService
	LayoutService       *services.LayoutService
	FragmentService     *services.FragmentService
	TranslationService  *services.TranslationService
	ConfigService       *services.ConfigService
	CouponService       *services.CouponService
	SeoService          *services.SeoService
	AbTestService       *services.AbTestService
	AnalyticsService    *services.AnalyticsService
	CreditService       *services.CreditService
	AuthService         *services.AuthService
	ProvisioningService *services.ProvisioningService
	WarmingService      *services.WarmingService
	MediaService        *services.MediaService
}

// NewContainer builds the service graph. Email delivery is optional;
// without an API key provisioning still works, it just sends nothing.
func NewContainer(storeManager *tenant.Manager, cacheManager *manager.Manager) *Container {
	logger := storeManager.GetLogger()

	pricing := domainServices.NewPricingService()
	stock := domainServices.NewStockService()
	integrity := domainServices.NewSlotIntegrityService()
	renderer := templates.NewSlotRenderer(
		templates.NewDefaultRegistry(),
		templates.NewVariableResolver(pricing, stock),
	)

	storeMonitor := monitoring.NewStoreMonitor()
	storeMonitor.AddAlertCallback(func(alert *monitoring.StoreAlert) {
		logger.Store().Warn("Store health alert",
			"storeId", alert.StoreID, "severity", string(alert.Severity),
			"metric", alert.Metric, "message", alert.Message)
	})

	broadcaster := messaging.NewSSEBroadcaster(logger)
	adminBroadcaster := messaging.NewAdminBroadcaster(storeManager, cacheManager)

	emailService, err := email.NewService()
	if err != nil {
		logger.Email().Warn("Email delivery disabled", "reason", err.Error())
		emailService = nil
	}

	creditService := services.NewCreditService()
	catalogService := services.NewCatalogService(broadcaster)
	layoutService := services.NewLayoutService(integrity, broadcaster)
	translationService := services.NewTranslationService(creditService)
	configService := services.NewConfigService()
	seoService := services.NewSeoService(pricing)

	c := &Container{
		StoreManager: storeManager,
		CacheManager: cacheManager,
		Logger:       logger,
		StoreMonitor: storeMonitor,

		Broadcaster:      broadcaster,
		AdminBroadcaster: adminBroadcaster,
		EmailService:     emailService,

		SessionService:     services.NewSessionService(),
		CatalogService:     catalogService,
		LayoutService:      layoutService,
		TranslationService: translationService,
		ConfigService:      configService,
		CouponService:      services.NewCouponService(),
		SeoService:         seoService,
		AbTestService:      services.NewAbTestService(),
		AnalyticsService:   services.NewAnalyticsService(),
		CreditService:      creditService,
		AuthService:        services.NewAuthService(),
		WarmingService:     services.NewWarmingService(storeManager),
	}

	c.FragmentService = services.NewFragmentService(
		catalogService, layoutService, translationService, configService, seoService, renderer)
	c.ProvisioningService = services.NewProvisioningService(
		storeManager, cacheManager, emailService, logger)
	c.MediaService = services.NewMediaService(
		media.NewImageProcessor(config.ImageUploadDir), catalogService)

	return c
}
