package database

import (
	"fmt"
	"log"

	"community-app/config"
	"community-app/internal/domain/billing"
	"community-app/internal/domain/tools"
	"community-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&users.VerificationToken{},
		&billing.Payment{},
		&tools.Tool{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
	return db
}
