package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/db"
)

// ReportRepository stores user reports. Pure capture, nothing reads them
// back in-process.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{db: database}
}

// Create persists a report with the current timestamp.
func (r *ReportRepository) Create(ctx context.Context, reporterID, reportedID uint64, reason string) (*db.Report, error) {
	report := db.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     reason,
	}
	if err := r.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
