package database

import (
	"fmt"
	"log"
	"os"

	"agent-dashboard/internal/domain/accounts"
	"agent-dashboard/internal/domain/agents"
	"agent-dashboard/internal/domain/billing"
	"agent-dashboard/internal/domain/media"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&accounts.Account{},
		&billing.CreditAccount{},
		&billing.TrialHistory{},
		&billing.CreditLedger{},

		// agents + media
		&media.Image{},
		&agents.Agent{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}
