package routes

import (
	adminapi "community-app/internal/api/admin"
	authapi "community-app/internal/api/auth"
	billingapi "community-app/internal/api/billing"
	plansapi "community-app/internal/api/plans"
	stripewebhooks "community-app/internal/api/stripewebhook"
	toolsapi "community-app/internal/api/tools"
	usersapi "community-app/internal/api/users"
	"community-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers bundles the constructed API handlers for route wiring.
type Handlers struct {
	Auth    *authapi.Handler
	Users   *usersapi.Handler
	Billing *billingapi.Handler
	Webhook *stripewebhooks.Handler
	Tools   *toolsapi.Handler
	Plans   *plansapi.Handler
	Admin   *adminapi.Handler
	DB      *gorm.DB
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Webhook must see the raw body; no sanitization on this route.
	r.POST("/webhook", h.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.GET("/plans", h.Plans.ListPlans)
	public.GET("/verify", h.Users.VerifyEmail)
	public.POST("/resend-verification", h.Auth.ResendVerification)
	public.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	public.POST("/reset-password", h.Auth.ResetPassword)

	public.GET("/auth/google", h.Auth.GoogleStart)
	public.GET("/auth/google/callback", h.Auth.GoogleCallback)

	public.GET("/tools", h.Tools.ListTools)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", h.Users.GetCurrentUser)
	auth.POST("/change-password", h.Auth.ChangePassword)

	auth.POST("/check-subscription", h.Billing.CheckSubscription)
	auth.POST("/create-checkout", h.Billing.CreateCheckout)
	auth.POST("/update-subscription", h.Billing.UpdateSubscription)
	auth.GET("/payments", h.Billing.GetPaymentHistory)

	// Premium members
	premium := auth.Group("/")
	premium.Use(middleware.RequirePremium(h.DB))
	premium.POST("/tools", h.Tools.CreateTool)
	premium.PUT("/tools/:id", h.Tools.UpdateTool)
	premium.DELETE("/tools/:id", h.Tools.DeleteTool)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/users", h.Admin.ListAllUsers)
	admin.GET("/payments", h.Admin.ListAllPayments)
}
