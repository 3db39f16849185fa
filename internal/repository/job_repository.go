package repository

import (
	"errors"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// Create inserts a job. A unique-constraint conflict on the URL comes back as
// an apperror.DuplicateError carrying the existing job's id.
func (r *JobRepository) Create(job *model.Job) error {
	err := r.db.Create(job).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindByURL(job.URL)
		if findErr == nil && existing != nil {
			return &apperror.DuplicateError{JobID: existing.ID}
		}
		return &apperror.DuplicateError{}
	}
	return &apperror.PersistenceError{Op: "insert job", Cause: err}
}

func (r *JobRepository) FindByID(id string) (*model.Job, error) {
	// A malformed id would otherwise bubble up as a uuid cast error.
	if _, err := uuid.Parse(id); err != nil {
		return nil, &apperror.NotFoundError{Resource: "job"}
	}
	var job model.Job
	err := r.db.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.NotFoundError{Resource: "job"}
	}
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "find job", Cause: err}
	}
	return &job, nil
}

// FindByURL returns (nil, nil) when no job tracks the URL.
func (r *JobRepository) FindByURL(url string) (*model.Job, error) {
	var job model.Job
	err := r.db.First(&job, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "find job by url", Cause: err}
	}
	return &job, nil
}

// List applies the dashboard filter tabs plus an optional title/company
// search. Returns the page of jobs and the total row count for the filter.
func (r *JobRepository) List(filter, query string, limit, offset int) ([]model.Job, int64, error) {
	q := r.db.Model(&model.Job{})

	switch filter {
	case "perfect":
		q = q.Where("match_quality = ?", model.MatchPerfect).
			Where("status NOT IN ?", []string{model.StatusApplied, model.StatusSkipped})
	case "wider":
		q = q.Where("match_quality = ?", model.MatchWiderNet).
			Where("status NOT IN ?", []string{model.StatusApplied, model.StatusSkipped})
	case "queued":
		q = q.Where("status = ?", model.StatusQueued)
	case "applied":
		q = q.Where("status = ?", model.StatusApplied)
	case "skipped":
		q = q.Where("status = ?", model.StatusSkipped)
	}

	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("title ILIKE ? OR company ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, &apperror.PersistenceError{Op: "count jobs", Cause: err}
	}

	var jobs []model.Job
	err := q.Order("discovered_date DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	if err != nil {
		return nil, 0, &apperror.PersistenceError{Op: "list jobs", Cause: err}
	}
	return jobs, total, nil
}

func (r *JobRepository) UpdateStatus(id, status string) (*model.Job, error) {
	job, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	job.Status = status
	if err := r.db.Model(job).Update("status", status).Error; err != nil {
		return nil, &apperror.PersistenceError{Op: "update job status", Cause: err}
	}
	return job, nil
}

// UpdateMatch persists the scorer's verdict.
func (r *JobRepository) UpdateMatch(job *model.Job, quality string, confidence int, reasoning string) error {
	job.MatchQuality = &quality
	job.MatchConfidence = &confidence
	job.MatchReasoning = &reasoning
	err := r.db.Model(job).Updates(map[string]any{
		"match_quality":    quality,
		"match_confidence": confidence,
		"match_reasoning":  reasoning,
	}).Error
	if err != nil {
		return &apperror.PersistenceError{Op: "update job match", Cause: err}
	}
	return nil
}

// FindUnanalyzed returns up to limit jobs without a match verdict, newest
// discoveries first.
func (r *JobRepository) FindUnanalyzed(limit int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("match_quality IS NULL").
		Order("discovered_date DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "find unanalyzed jobs", Cause: err}
	}
	return jobs, nil
}

func (r *JobRepository) CountUnanalyzed() (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).Where("match_quality IS NULL").Count(&count).Error
	if err != nil {
		return 0, &apperror.PersistenceError{Op: "count unanalyzed jobs", Cause: err}
	}
	return count, nil
}

func (r *JobRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, &apperror.PersistenceError{Op: "count jobs by status", Cause: err}
	}
	return count, nil
}

// CountPerfectDiscovered counts perfect matches still awaiting action.
func (r *JobRepository) CountPerfectDiscovered() (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).
		Where("match_quality = ? AND status = ?", model.MatchPerfect, model.StatusDiscovered).
		Count(&count).Error
	if err != nil {
		return 0, &apperror.PersistenceError{Op: "count perfect matches", Cause: err}
	}
	return count, nil
}
