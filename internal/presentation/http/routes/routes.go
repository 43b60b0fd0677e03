// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DainoStore/dainostore-go/internal/application/container"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/performance"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/handlers"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	storefrontHandlers := handlers.NewStorefrontHandlers(container.FragmentService, container.SessionService, container.AbTestService, container.Logger)
	sessionHandlers := handlers.NewSessionHandlers(container.SessionService, container.Broadcaster)
	authHandlers := handlers.NewAuthHandlers(container.AuthService)
	catalogHandlers := handlers.NewCatalogHandlers(container.CatalogService, container.TranslationService)
	layoutHandlers := handlers.NewLayoutHandlers(container.LayoutService)
	marketingHandlers := handlers.NewMarketingHandlers(container.CouponService, container.SeoService, container.AbTestService)
	translationHandlers := handlers.NewTranslationHandlers(container.TranslationService)
	settingsHandlers := handlers.NewSettingsHandlers(container.ConfigService)
	analyticsHandlers := handlers.NewAnalyticsHandlers(container.AnalyticsService, container.AbTestService, container.SessionService)
	billingHandlers := handlers.NewBillingHandlers(container.CreditService)
	mediaHandlers := handlers.NewMediaHandlers(container.MediaService)
	provisioningHandlers := handlers.NewProvisioningHandlers(container.ProvisioningService)
	adminHandlers := handlers.NewAdminHandlers(container.CacheManager, container.AdminBroadcaster, container.FragmentService, container.AuthService, container.StoreMonitor, container.Logger)

	r.GET("/api/v1/health", adminHandlers.GetHealth)

	// Platform-level provisioning routes resolve no store context.
	provisioning := r.Group("/api/v1/provisioning")
	{
		provisioning.GET("/capacity", provisioningHandlers.GetCapacity)
		provisioning.POST("/reserve", provisioningHandlers.ReserveStore)
		provisioning.GET("/activate", provisioningHandlers.ActivateStore)
		provisioning.GET("/status/:storeId", provisioningHandlers.GetStatus)
	}

	// Everything below runs against a resolved, active store.
	api := r.Group("/api/v1")
	api.Use(middleware.StoreMiddleware(container.StoreManager, perfTracker, container.StoreMonitor))
	{
		// Storefront pages
		pages := api.Group("/pages")
		{
			pages.GET("/home", storefrontHandlers.GetHomePage)
			pages.GET("/category/:slug", storefrontHandlers.GetCategoryPage)
			pages.GET("/product/:slug", storefrontHandlers.GetProductPage)
			pages.GET("/product/:slug/meta", storefrontHandlers.GetProductMeta)
			pages.GET("/category/:slug/meta", storefrontHandlers.GetCategoryMeta)
		}

		// Shopper sessions and live updates
		api.POST("/session", sessionHandlers.CreateSession)
		api.PUT("/session/preferences", sessionHandlers.UpdatePreferences)
		api.GET("/updates", sessionHandlers.Subscribe)

		// Event ingestion
		api.POST("/events", analyticsHandlers.TrackEvent)
		api.POST("/events/conversion", analyticsHandlers.RecordConversion)

		// Public catalog reads
		api.GET("/products", catalogHandlers.ListProducts)
		api.GET("/products/:id", catalogHandlers.GetProduct)
		api.GET("/categories", catalogHandlers.ListCategories)
		api.GET("/categories/:id", catalogHandlers.GetCategory)
		api.GET("/attributes", catalogHandlers.ListAttributes)
		api.GET("/languages", translationHandlers.ListLanguages)
		api.POST("/coupons/validate", marketingHandlers.ValidateCoupon)
		api.POST("/coupons/redeem", marketingHandlers.RedeemCoupon)

		// Authentication
		api.POST("/auth/login", authHandlers.Login)

		// Editor routes: content editing for admins and editors.
		editor := api.Group("")
		editor.Use(middleware.AuthMiddleware(container.AuthService, security.RoleEditor))
		{
			editor.POST("/products", catalogHandlers.CreateProduct)
			editor.PUT("/products/:id", catalogHandlers.UpdateProduct)
			editor.DELETE("/products/:id", catalogHandlers.DeleteProduct)
			editor.POST("/products/:id/images", mediaHandlers.AddProductImage)
			editor.DELETE("/products/:id/images/:imageId", mediaHandlers.RemoveProductImage)
			editor.POST("/categories", catalogHandlers.CreateCategory)
			editor.PUT("/categories/:id", catalogHandlers.UpdateCategory)
			editor.DELETE("/categories/:id", catalogHandlers.DeleteCategory)
			editor.POST("/attributes", catalogHandlers.CreateAttribute)
			editor.PUT("/attributes/:id", catalogHandlers.UpdateAttribute)
			editor.DELETE("/attributes/:id", catalogHandlers.DeleteAttribute)

			editor.GET("/layouts", layoutHandlers.ListLayouts)
			editor.GET("/layouts/:id", layoutHandlers.GetLayout)
			editor.POST("/layouts", layoutHandlers.CreateLayout)
			editor.PUT("/layouts/:id", layoutHandlers.UpdateLayout)
			editor.POST("/layouts/:id/publish", layoutHandlers.PublishLayout)
			editor.POST("/layouts/:id/unpublish", layoutHandlers.UnpublishLayout)
			editor.DELETE("/layouts/:id", layoutHandlers.DeleteLayout)
			editor.POST("/layouts/check", layoutHandlers.CheckLayout)

			editor.GET("/coupons", marketingHandlers.ListCoupons)
			editor.POST("/coupons", marketingHandlers.CreateCoupon)
			editor.PUT("/coupons/:id", marketingHandlers.UpdateCoupon)
			editor.DELETE("/coupons/:id", marketingHandlers.DeleteCoupon)

			editor.GET("/seo/templates", marketingHandlers.ListSeoTemplates)
			editor.POST("/seo/templates", marketingHandlers.CreateSeoTemplate)
			editor.PUT("/seo/templates/:id", marketingHandlers.UpdateSeoTemplate)
			editor.DELETE("/seo/templates/:id", marketingHandlers.DeleteSeoTemplate)

			editor.GET("/abtests", marketingHandlers.ListAbTests)
			editor.GET("/abtests/:id", marketingHandlers.GetAbTest)
			editor.POST("/abtests", marketingHandlers.CreateAbTest)
			editor.PUT("/abtests/:id", marketingHandlers.UpdateAbTest)
			editor.DELETE("/abtests/:id", marketingHandlers.DeleteAbTest)

			editor.POST("/languages", translationHandlers.CreateLanguage)
			editor.PUT("/languages/:id", translationHandlers.UpdateLanguage)
			editor.DELETE("/languages/:id", translationHandlers.DeleteLanguage)
			editor.GET("/translations", translationHandlers.ListTranslations)
			editor.PUT("/translations", translationHandlers.UpsertTranslation)
			editor.DELETE("/translations/:id", translationHandlers.DeleteTranslation)
			editor.POST("/translations/quick-translate", translationHandlers.QuickTranslate)

			editor.GET("/analytics/counts", analyticsHandlers.GetEventCounts)
			editor.GET("/analytics/dashboard", analyticsHandlers.GetDashboard)
			editor.GET("/analytics/recent", analyticsHandlers.GetRecentEvents)
		}

		// Admin routes: store-level configuration and platform surfaces.
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(container.AuthService, security.RoleAdmin))
		{
			admin.POST("/auth/password", authHandlers.ChangePassword)

			admin.GET("/settings", settingsHandlers.GetSettings)
			admin.PUT("/settings/:key", settingsHandlers.UpdateSetting)
			admin.DELETE("/settings/:key", settingsHandlers.DeleteSetting)

			admin.GET("/billing/balance", billingHandlers.GetBalance)
			admin.GET("/billing/costs", billingHandlers.GetCosts)
			admin.GET("/billing/ledger", billingHandlers.GetLedger)
			admin.GET("/billing/afford", billingHandlers.CheckAffordability)
			admin.POST("/billing/grant", billingHandlers.GrantCredits)

			admin.POST("/branding", mediaHandlers.UploadBrandingAsset)
			admin.GET("/cache/stats", adminHandlers.GetCacheStats)
			admin.POST("/cache/invalidate", adminHandlers.InvalidateFragments)
			admin.POST("/analytics/purge", analyticsHandlers.PurgeEvents)
		}

		// The admin activity websocket authenticates via query token
		// because browsers cannot set headers on websocket upgrades.
		api.GET("/admin/activity", adminHandlers.StreamActivity)
	}

	return r
}
