package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/isp-backoffice-api/internal/middleware"
	"github.com/noah-isme/isp-backoffice-api/internal/models"
)

// Handlers groups every HTTP handler mounted under the API prefix.
type Handlers struct {
	Auth      *AuthHandler
	Customers *CustomerHandler
	Bundles   *BundleHandler
	Payments  *PaymentHandler
	Snapshots *SnapshotHandler
	Drafts    *DraftHandler
}

// RegisterRoutes mounts the API on group. Everything except login requires a token;
// deletes of customers and bundles require SUPERADMIN.
func RegisterRoutes(group *gin.RouterGroup, h Handlers, tokens middleware.TokenValidator) {
	group.POST("/auth/login", h.Auth.Login)

	secured := group.Group("")
	secured.Use(middleware.JWT(tokens))
	superAdmin := middleware.RequireRoles(models.RoleSuperAdmin)

	secured.GET("/auth/me", h.Auth.Me)

	customers := secured.Group("/customers")
	customers.GET("", h.Customers.List)
	customers.GET("/filters", h.Customers.Filters)
	customers.GET("/export", h.Customers.Export)
	customers.GET("/:id", h.Customers.Get)
	customers.POST("", h.Customers.Create)
	customers.PUT("/:id", h.Customers.Update)
	customers.DELETE("/:id", superAdmin, h.Customers.Delete)

	bundles := secured.Group("/bundles")
	bundles.GET("", h.Bundles.List)
	bundles.GET("/filters", h.Bundles.Filters)
	bundles.GET("/export", h.Bundles.Export)
	bundles.GET("/:id", h.Bundles.Get)
	bundles.POST("", h.Bundles.Create)
	bundles.PUT("/:id", h.Bundles.Update)
	bundles.DELETE("/:id", superAdmin, h.Bundles.Delete)

	payments := secured.Group("/payments")
	payments.GET("", h.Payments.List)
	payments.GET("/filters", h.Payments.Filters)
	payments.GET("/export", h.Payments.Export)
	payments.GET("/:id", h.Payments.Get)
	payments.POST("", h.Payments.Create)

	snapshots := secured.Group("/snapshots")
	snapshots.GET("", h.Snapshots.List)
	snapshots.GET("/:resource", h.Snapshots.Get)
	snapshots.POST("/:resource/refresh", h.Snapshots.Refresh)

	drafts := secured.Group("/drafts")
	drafts.POST("", h.Drafts.Create)
	drafts.GET("/:id", h.Drafts.Get)
	drafts.DELETE("/:id", h.Drafts.Discard)
	drafts.POST("/:id/entries", h.Drafts.AddEntry)
	drafts.PATCH("/:id/entries/:tempId", h.Drafts.UpdateField)
	drafts.PUT("/:id/entries/:tempId/status", h.Drafts.SetStatus)
	drafts.POST("/:id/entries/:tempId/copy-primary", h.Drafts.CopyPrimaryLocation)
	drafts.POST("/:id/entries/:tempId/toggle", h.Drafts.ToggleExpanded)
	drafts.POST("/:id/entries/:tempId/removal", h.Drafts.RequestRemoval)
	drafts.POST("/:id/removal/confirm", h.Drafts.ConfirmRemoval)
	drafts.DELETE("/:id/removal", h.Drafts.CancelRemoval)
	drafts.POST("/:id/validate", h.Drafts.Validate)
	drafts.POST("/:id/submit", h.Drafts.Submit)
}
