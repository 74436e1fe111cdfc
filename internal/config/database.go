package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storedash/internal/models"
)

// Connect opens the Postgres connection and runs migrations. The
// handle is owned by the caller; nothing here is a package global.
func Connect(cfg DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.Timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Split out so tests can run it against
// their own database handles.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Retailer{},
		&models.Driver{},
		&models.Distributor{},
		&models.Admin{},
		&models.AdminRequest{},
		&models.Order{},
		&models.Trip{},
		&models.Bank{},
		&models.Vehicle{},
		&models.Inventory{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
