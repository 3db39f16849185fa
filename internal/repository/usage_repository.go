package repository

import (
	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"gorm.io/gorm"
)

// UsageRepository appends to the ai_usage_logs table. Rows are never updated
// or deleted.
type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db}
}

func (r *UsageRepository) Create(entry *model.AiUsageLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return &apperror.PersistenceError{Op: "insert usage log", Cause: err}
	}
	return nil
}
