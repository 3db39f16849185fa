package repository

import (
	"errors"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db}
}

// FindByName looks up a company case-insensitively. Returns (nil, nil) when
// there is no match; a manually added job simply goes untagged.
func (r *CompanyRepository) FindByName(name string) (*model.Company, error) {
	var company model.Company
	err := r.db.Where("name ILIKE ?", name).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "find company", Cause: err}
	}
	return &company, nil
}
