package routes

import (
	accountsapi "agent-dashboard/internal/api/accounts"
	adminapi "agent-dashboard/internal/api/admin"
	agentsapi "agent-dashboard/internal/api/agents"
	authapi "agent-dashboard/internal/api/auth"
	"agent-dashboard/internal/api/billing"
	stripewebhooks "agent-dashboard/internal/api/stripewebhook"
	"agent-dashboard/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/billing/tiers", billing.ListTiers)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", accountsapi.GetCurrentAccount)
	auth.POST("/auth/change-password", authapi.ChangePassword)

	auth.GET("/billing/subscription", billing.GetSubscription)
	auth.GET("/billing/trial/status", billing.GetTrialStatus)
	auth.POST("/billing/trial/start", billing.StartTrial)
	auth.POST("/billing/trial/cancel", billing.CancelTrial)
	auth.POST("/billing/portal", billing.CreateBillingPortal)
	auth.GET("/billing/ledger", billing.GetLedger)

	// Entitled accounts only (paid tier or running trial)
	entitled := auth.Group("/")
	entitled.Use(middleware.RequireEntitlement())
	entitled.GET("/agents", agentsapi.ListAgents)
	entitled.POST("/agents", agentsapi.CreateAgent)
	entitled.GET("/agents/:id", agentsapi.GetAgent)
	entitled.PUT("/agents/:id/profile-image", agentsapi.SetProfileImage)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/accounts", adminapi.ListAllAccounts)
	admin.GET("/trials", adminapi.ListTrialHistory)
}
