package models

import "time"

// ParseRun is a diagnostic summary of one processed upload. Records
// themselves are never stored.
type ParseRun struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Filename       string    `json:"filename"`
	Endpoint       string    `gorm:"index" json:"endpoint"`
	TotalCount     int       `json:"total_count"`
	SkippedRows    int       `json:"skipped_rows"`
	IgnoredRows    int       `json:"ignored_rows"`
	Warnings       int       `json:"warnings"`
	Matched        int       `json:"matched"`
	AppliedFilters int       `json:"applied_filters"`
	DurationMs     int64     `json:"duration_ms"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (ParseRun) TableName() string {
	return "parse_runs"
}
