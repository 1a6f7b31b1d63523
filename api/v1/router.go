package v1

import (
	"go_shop/api/v1/auth"
	"go_shop/api/v1/campaigns"
	"go_shop/api/v1/middleware"
	"go_shop/api/v1/orders"
	"go_shop/api/v1/siteconfig"
	"go_shop/internal/config"
	"go_shop/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", auth.LoginHandler(db, cfg))
		}

		campaignsHandler := campaigns.NewHandler(db)
		ordersHandler := orders.NewHandler(db, cfg)
		siteConfigHandler := siteconfig.NewHandler(db)

		// Storefront routes (public reads + checkout)
		v1.GET("/campaigns/:slug", campaignsHandler.Get)
		v1.POST("/campaigns/eligibility", campaignsHandler.CheckEligibility)
		v1.GET("/site-config", siteConfigHandler.GetActive)
		v1.POST("/orders/checkout", ordersHandler.Checkout)
		v1.GET("/orders/:reference", ordersHandler.Get)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/me", meHandler)

			// Campaign administration
			campaignsGroup := protected.Group("/campaigns")
			{
				campaignsGroup.GET("", campaignsHandler.List)
				campaignsGroup.POST("/create", campaignsHandler.Create)
				campaignsGroup.POST("/update", campaignsHandler.Update)
				campaignsGroup.POST("/disable", campaignsHandler.Disable)
				campaignsGroup.POST("/duplicate", campaignsHandler.Duplicate)
			}

			// Order administration
			ordersGroup := protected.Group("/orders")
			{
				ordersGroup.GET("", ordersHandler.List)
				ordersGroup.POST("/mark-paid", ordersHandler.MarkTranchePaid)
			}

			// Site configuration + version ledger
			siteConfigGroup := protected.Group("/site-config")
			{
				siteConfigGroup.POST("/update", siteConfigHandler.Update)
				siteConfigGroup.GET("/versions", siteConfigHandler.ListVersions)
				siteConfigGroup.GET("/versions/:version", siteConfigHandler.GetVersion)
				siteConfigGroup.POST("/restore", siteConfigHandler.Restore)
				siteConfigGroup.GET("/export", siteConfigHandler.Export)
				siteConfigGroup.POST("/import", siteConfigHandler.Import)
			}
		}
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{"pong": true})
}

// meHandler returns the authenticated user's identity from the token claims
func meHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"uid":      c.GetInt("uid"),
		"username": c.GetString("username"),
		"email":    c.GetString("email"),
		"role":     c.GetString("role"),
	})
}
