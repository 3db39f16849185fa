package usecase

import (
	"slices"
	"strings"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/dto"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/response"
)

const (
	defaultPageSize = 60
	maxPageSize     = 100
)

// JobUsecase covers the plain CRUD side of the board: listing, manual
// creation, status moves, and recording an application.
type JobUsecase struct {
	jobs         JobStore
	companies    CompanyStore
	applications ApplicationStore
	letters      CoverLetterStore
}

func NewJobUsecase(jobs JobStore, companies CompanyStore, applications ApplicationStore, letters CoverLetterStore) *JobUsecase {
	return &JobUsecase{jobs: jobs, companies: companies, applications: applications, letters: letters}
}

// List pages through jobs, optionally narrowed by match filter and a
// title/company search.
func (uc *JobUsecase) List(filter, query string, page, limit int) ([]model.Job, *response.Pagination, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	jobs, total, err := uc.jobs.List(filter, query, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	if len(jobs) > 0 {
		pagination.From = offset + 1
		pagination.To = offset + len(jobs)
	}
	return jobs, pagination, nil
}

func (uc *JobUsecase) Get(id string) (*model.Job, error) {
	return uc.jobs.FindByID(id)
}

// Create adds a job by hand. When the company matches a tracked company the
// job is tagged with its id.
func (uc *JobUsecase) Create(req *dto.JobCreateRequest) (*model.Job, error) {
	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	url := strings.TrimSpace(req.URL)
	if title == "" || company == "" || url == "" {
		return nil, &apperror.ValidationError{Message: "title, company, and url are required"}
	}

	existing, err := uc.jobs.FindByURL(url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &apperror.DuplicateError{JobID: existing.ID}
	}

	job := &model.Job{
		Title:        title,
		Company:      company,
		Location:     req.Location,
		Remote:       req.Remote,
		URL:          url,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Source:       model.SourceManual,
		Status:       model.StatusDiscovered,
		Fingerprint:  url,
	}
	if tracked, err := uc.companies.FindByName(company); err == nil && tracked != nil {
		job.CompanyID = &tracked.ID
	}

	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateStatus moves a job through the pipeline.
func (uc *JobUsecase) UpdateStatus(id, status string) (*model.Job, error) {
	if !slices.Contains(model.ValidStatuses, status) {
		return nil, &apperror.ValidationError{
			Message: "status must be one of: " + strings.Join(model.ValidStatuses, ", "),
		}
	}
	return uc.jobs.UpdateStatus(id, status)
}

// Apply records a submitted application for the job and marks the job
// applied. The latest cover letter, if any, is linked on the record.
func (uc *JobUsecase) Apply(id string, req *dto.ApplyRequest) (*model.Application, error) {
	job, err := uc.jobs.FindByID(id)
	if err != nil {
		return nil, err
	}

	method := strings.TrimSpace(req.SubmissionMethod)
	if method == "" {
		method = "manual"
	}

	app := &model.Application{
		JobID:            job.ID,
		Status:           model.ApplicationSubmitted,
		ApplicationType:  model.ApplicationTypeManual,
		SubmissionMethod: method,
		UserNotes:        req.Notes,
	}
	if letter, err := uc.letters.FindLatestByJob(job.ID); err == nil && letter != nil {
		app.CoverLetterID = &letter.ID
	}

	if err := uc.applications.Create(app); err != nil {
		return nil, err
	}
	if _, err := uc.jobs.UpdateStatus(id, model.StatusApplied); err != nil {
		return nil, err
	}
	return app, nil
}
