package repository

import (
	"errors"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoverLetterRepository struct {
	db *gorm.DB
}

func NewCoverLetterRepository(db *gorm.DB) *CoverLetterRepository {
	return &CoverLetterRepository{db}
}

// Replace deletes any existing letter for the job and inserts the new one in
// a single transaction, keeping at most one current letter per job.
func (r *CoverLetterRepository) Replace(letter *model.CoverLetter) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", letter.JobID).Delete(&model.CoverLetter{}).Error; err != nil {
			return err
		}
		return tx.Create(letter).Error
	})
	if err != nil {
		return &apperror.PersistenceError{Op: "replace cover letter", Cause: err}
	}
	return nil
}

// FindLatestByJob returns (nil, nil) when the job has no letter.
func (r *CoverLetterRepository) FindLatestByJob(jobID uuid.UUID) (*model.CoverLetter, error) {
	var letter model.CoverLetter
	err := r.db.Where("job_id = ?", jobID).Order("created_at DESC").First(&letter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "find cover letter", Cause: err}
	}
	return &letter, nil
}
