package database

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"crmboard/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Sqlx wraps gorm's underlying connection for the raw statistics queries.
func Sqlx(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// the driver label only selects the bindvar style for Rebind
	driver := "sqlite3"
	if db.Dialector.Name() == "postgres" {
		driver = "postgres"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}

// Migrate creates every table of the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Company{},
		&domain.User{},
		&domain.Pipeline{},
		&domain.Stage{},
		&domain.Lead{},
		&domain.CustomField{},
		&domain.CustomValue{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.ApiToken{},
		&domain.Campaign{},
		&domain.GreetingMessage{},
		&domain.UserPreference{},
	)
}
