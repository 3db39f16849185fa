package repository

import (
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return &apperror.PersistenceError{Op: "insert application", Cause: err}
	}
	return nil
}

// CountSince counts applications filed at or after t.
func (r *ApplicationRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).
		Where("application_date >= ?", t).
		Count(&count).Error
	if err != nil {
		return 0, &apperror.PersistenceError{Op: "count applications", Cause: err}
	}
	return count, nil
}

func (r *ApplicationRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, &apperror.PersistenceError{Op: "count applications by status", Cause: err}
	}
	return count, nil
}

// Recent returns the newest applications with their jobs preloaded, for the
// dashboard feed.
func (r *ApplicationRepository) Recent(limit int) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Preload("Job").Order("application_date DESC").Limit(limit).Find(&apps).Error
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "list recent applications", Cause: err}
	}
	return apps, nil
}
