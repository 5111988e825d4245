package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	APP_URL     string
	CORS_ORIGIN string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	// Tier price references. Loaded once and injected into the tier
	// catalog; handlers never carry their own copies.
	PRICE_SILVER_MONTHLY string
	PRICE_SILVER_YEARLY  string
	PRICE_GOLD_MONTHLY   string
	PRICE_GOLD_YEARLY    string

	// List amounts in cents, used only for the flat preview fallback.
	AMOUNT_SILVER_MONTHLY int64
	AMOUNT_SILVER_YEARLY  int64
	AMOUNT_GOLD_MONTHLY   int64
	AMOUNT_GOLD_YEARLY    int64

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	PRICE_SILVER_MONTHLY = mustEnv("STRIPE_PRICE_SILVER_MONTHLY")
	PRICE_SILVER_YEARLY = mustEnv("STRIPE_PRICE_SILVER_YEARLY")
	PRICE_GOLD_MONTHLY = mustEnv("STRIPE_PRICE_GOLD_MONTHLY")
	PRICE_GOLD_YEARLY = mustEnv("STRIPE_PRICE_GOLD_YEARLY")

	AMOUNT_SILVER_MONTHLY = getEnvInt64("AMOUNT_SILVER_MONTHLY", 999)
	AMOUNT_SILVER_YEARLY = getEnvInt64("AMOUNT_SILVER_YEARLY", 9900)
	AMOUNT_GOLD_MONTHLY = getEnvInt64("AMOUNT_GOLD_MONTHLY", 1999)
	AMOUNT_GOLD_YEARLY = getEnvInt64("AMOUNT_GOLD_YEARLY", 19900)

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, value)
	}
	return n
}
