package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/extract"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/prompt"
	"github.com/dhealy/applytrack/internal/sanitize"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/google/uuid"
)

// minPageTextLength is the smallest sanitized page that is worth sending to
// the model. Anything shorter is almost always a bot wall or a JS shell.
const minPageTextLength = 200

const extractionMaxTokens = 2048

// extractedJob is the shape the model is asked to return for a single
// posting. Nullable fields stay pointers so absent values survive into the
// row as NULLs.
type extractedJob struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	URL          string  `json:"url"`
	Location     *string `json:"location"`
	Remote       bool    `json:"remote"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	SalaryMin    *int    `json:"salary_min"`
	SalaryMax    *int    `json:"salary_max"`
}

// ImportUsecase turns a posting URL into a stored job: fetch the page,
// sanitize it, have the model extract structured fields, persist.
type ImportUsecase struct {
	jobs    JobStore
	usage   UsageStore
	fetcher service.FetcherInterface
	llm     service.CompletionClientInterface
}

func NewImportUsecase(jobs JobStore, usage UsageStore, fetcher service.FetcherInterface, llm service.CompletionClientInterface) *ImportUsecase {
	return &ImportUsecase{jobs: jobs, usage: usage, fetcher: fetcher, llm: llm}
}

func (uc *ImportUsecase) ImportFromURL(ctx context.Context, url string) (*model.Job, error) {
	url = strings.TrimSpace(url)
	if url == "" || !strings.HasPrefix(url, "http") {
		return nil, &apperror.ValidationError{Message: "a valid job posting URL is required"}
	}

	// Duplicate check up front so a known URL never costs a fetch or an
	// LLM call.
	existing, err := uc.jobs.FindByURL(url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &apperror.DuplicateError{JobID: existing.ID}
	}

	html, err := uc.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	text := sanitize.PageText(html)
	if len(text) < minPageTextLength {
		return nil, &apperror.TooShortError{Length: len(text)}
	}

	completion, err := uc.llm.Complete(ctx, prompt.PageExtraction(text), extractionMaxTokens)
	if err != nil {
		return nil, err
	}

	var ex extractedJob
	if err := extract.Object(completion.Text, &ex); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ex.Title) == "" || strings.TrimSpace(ex.Company) == "" {
		return nil, apperror.ErrIncompleteExtraction
	}

	job := &model.Job{
		Title:        ex.Title,
		Company:      ex.Company,
		Location:     ex.Location,
		Remote:       ex.Remote,
		URL:          url,
		Description:  ex.Description,
		Requirements: ex.Requirements,
		SalaryMin:    ex.SalaryMin,
		SalaryMax:    ex.SalaryMax,
		Source:       model.SourceURLImport,
		Status:       model.StatusDiscovered,
		Fingerprint:  url,
	}
	if err := uc.jobs.Create(job); err != nil {
		return nil, err
	}

	uc.logUsage(job.ID, completion)

	return job, nil
}

// logUsage is best-effort: a failed audit row never fails the import.
func (uc *ImportUsecase) logUsage(jobID uuid.UUID, completion *service.Completion) {
	entry := &model.AiUsageLog{
		JobID:        &jobID,
		Operation:    model.OperationURLImport,
		Model:        completion.Model,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		Cost:         service.Cost(completion.Model, completion.InputTokens, completion.OutputTokens),
	}
	if err := uc.usage.Create(entry); err != nil {
		log.Printf("usage log insert failed: %v", err)
	}
}
