package migrations

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
	"github.com/BenAji/agora/internal/domain/user"
	"github.com/BenAji/agora/internal/infrastructure/persistence/postgres/connection"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models. Order matters:
// companies before users (affiliation FK), events before RSVPs.
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %v", err)
	}

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"companies", &company.Company{}},
		{"gics_companies", &company.GicsCompany{}},
		{"users", &user.User{}},
		{"events", &event.Event{}},
		{"rsvps", &rsvp.RSVP{}},
		{"subscriptions", &subscription.Subscription{}},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.AutoMigrate(m.model); err != nil {
				logger.Error("Migration failed",
					zap.String("model", m.name),
					zap.Error(err),
				)
				return fmt.Errorf("failed to migrate %s: %v", m.name, err)
			}

			var count int64
			if err := tx.Model(&MigrationRecord{}).Where("name = ?", m.name).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				record := MigrationRecord{Name: m.name, AppliedAt: time.Now().UTC()}
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("failed to record migration %s: %v", m.name, err)
				}
			}

			logger.Info("Migrated model", zap.String("model", m.name))
		}
		return nil
	})
}
