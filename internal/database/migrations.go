package database

import (
	"gorm.io/gorm"

	"github.com/notCienki/geoportal-app/internal/models"
)

func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}

// MigrateSchema creates or updates the run log tables
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ParseRun{}); err != nil {
		return err
	}

	// Listing and pruning both walk runs by age
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_parse_runs_endpoint_created
		ON parse_runs(endpoint, created_at);
	`).Error
}
