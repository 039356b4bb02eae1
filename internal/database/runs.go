package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/notCienki/geoportal-app/internal/models"
)

const maxRunsLimit = 500

// InsertRuns writes a batch of runs. Runs whose id already exists are left
// untouched, so a retried batch never duplicates rows.
func InsertRuns(tx *gorm.DB, runs []*models.ParseRun) error {
	if len(runs) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(runs).Error
}

// ListRecentRuns returns the newest runs first. Limit is clamped to
// 1..500.
func (d *Database) ListRecentRuns(limit int, endpoint string) ([]models.ParseRun, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}

	query := d.db.Order("created_at DESC").Limit(limit)
	if endpoint != "" {
		query = query.Where("endpoint = ?", endpoint)
	}

	runs := []models.ParseRun{}
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// PruneRunsBefore deletes runs created before cutoff and returns how many
// were removed
func (d *Database) PruneRunsBefore(cutoff time.Time) (int64, error) {
	result := d.db.Where("created_at < ?", cutoff).Delete(&models.ParseRun{})
	return result.RowsAffected, result.Error
}
