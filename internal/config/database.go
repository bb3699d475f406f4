package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"routemaster/internal/models"
)

// InitDB opens the admin service's Postgres connection and migrates
// the schema for submitted routes and admin credentials.
func InitDB(cfg DBConfig) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.Timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.AdminUser{}, &models.SavedRoute{}, &models.SavedStop{})
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	return db
}
