package main

import (
	"os"
	"time"

	"community-app/config"
	"community-app/database"
	adminapi "community-app/internal/api/admin"
	authapi "community-app/internal/api/auth"
	billingapi "community-app/internal/api/billing"
	plansapi "community-app/internal/api/plans"
	stripewebhooks "community-app/internal/api/stripewebhook"
	toolsapi "community-app/internal/api/tools"
	usersapi "community-app/internal/api/users"
	routes "community-app/internal/app/http"
	"community-app/internal/domain/billing"
	"community-app/internal/domain/entitlement"
	"community-app/internal/domain/tiers"
	stripeinfra "community-app/internal/infra/stripe"
	"community-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	db := database.InitDB()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	catalog := tiers.NewCatalog(
		tiers.Price{Ref: config.PRICE_SILVER_MONTHLY, AmountCents: config.AMOUNT_SILVER_MONTHLY},
		tiers.Price{Ref: config.PRICE_SILVER_YEARLY, AmountCents: config.AMOUNT_SILVER_YEARLY},
		tiers.Price{Ref: config.PRICE_GOLD_MONTHLY, AmountCents: config.AMOUNT_GOLD_MONTHLY},
		tiers.Price{Ref: config.PRICE_GOLD_YEARLY, AmountCents: config.AMOUNT_GOLD_YEARLY},
	)

	source := stripeinfra.NewClient(config.STRIPE_SECRET_KEY)
	resolver := entitlement.NewResolver(source, catalog)
	usersStore := store.NewUsers(db)

	handlers := routes.Handlers{
		Auth:  &authapi.Handler{DB: db},
		Users: &usersapi.Handler{DB: db},
		Billing: &billingapi.Handler{
			Resolver: resolver,
			Store:    usersStore,
			Checkout: billing.NewCheckoutInitiator(source, resolver, catalog, config.APP_URL),
			Changes:  billing.NewTierChangeCalculator(source, catalog),
			Users:    usersStore,
			DB:       db,
			Log:      logger.With().Str("component", "billing").Logger(),
		},
		Webhook: &stripewebhooks.Handler{
			Secret:   config.STRIPE_WEBHOOK_SECRET,
			Resolver: resolver,
			Store:    usersStore,
			Users:    usersStore,
			DB:       db,
			Log:      logger.With().Str("component", "webhook").Logger(),
		},
		Tools: &toolsapi.Handler{DB: db},
		Plans: &plansapi.Handler{Catalog: catalog},
		Admin: &adminapi.Handler{DB: db},
		DB:    db,
	}

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, handlers)

	r.Run(":" + config.PORT)
}
