package database

import (
	"fmt"
	"log"

	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate error: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// Open connects with the named driver. sqlite is meant for local development
// and tests, postgres for everything else.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.SpecialOffer{},
		&models.AuditLog{},
	)
}
