package usecase

import (
	"context"
	"log"
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/markdown"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/prompt"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const coverLetterMaxTokens = 1024

// CoverLetterUsecase drafts cover letters and serves the latest draft per
// job. Regenerating replaces the previous draft; only the newest one is
// kept.
type CoverLetterUsecase struct {
	jobs     JobStore
	letters  CoverLetterStore
	settings SettingsStore
	usage    UsageStore
	llm      service.CompletionClientInterface
}

func NewCoverLetterUsecase(jobs JobStore, letters CoverLetterStore, settings SettingsStore, usage UsageStore, llm service.CompletionClientInterface) *CoverLetterUsecase {
	return &CoverLetterUsecase{jobs: jobs, letters: letters, settings: settings, usage: usage, llm: llm}
}

// Generate drafts a fresh cover letter for the job. The model's raw output
// is stored as-is; it is markdown, not JSON, so there is nothing to parse.
func (uc *CoverLetterUsecase) Generate(ctx context.Context, jobID string) (*model.CoverLetter, error) {
	job, err := uc.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.settings.GetUserProfile()
	if err != nil {
		return nil, err
	}

	completion, err := uc.llm.Complete(ctx, prompt.CoverLetter(profile, *job), coverLetterMaxTokens)
	if err != nil {
		return nil, err
	}

	letter := &model.CoverLetter{
		JobID:        job.ID,
		Content:      completion.Text,
		TemplateUsed: completion.Model,
		CustomizationNotes: datatypes.JSONMap{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"model":        completion.Model,
		},
	}
	if err := uc.letters.Replace(letter); err != nil {
		return nil, err
	}

	uc.logUsage(job.ID, completion)

	return letter, nil
}

// Latest returns the newest draft for the job, or (nil, nil) when no draft
// has been generated yet.
func (uc *CoverLetterUsecase) Latest(jobID string) (*model.CoverLetter, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, &apperror.NotFoundError{Resource: "job"}
	}
	return uc.letters.FindLatestByJob(id)
}

// RenderHTML converts a stored draft's markdown to minimal HTML.
func (uc *CoverLetterUsecase) RenderHTML(letter *model.CoverLetter) string {
	return markdown.RenderHTML(letter.Content)
}

func (uc *CoverLetterUsecase) logUsage(jobID uuid.UUID, completion *service.Completion) {
	entry := &model.AiUsageLog{
		JobID:        &jobID,
		Operation:    model.OperationCoverLetter,
		Model:        completion.Model,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		Cost:         service.Cost(completion.Model, completion.InputTokens, completion.OutputTokens),
	}
	if err := uc.usage.Create(entry); err != nil {
		log.Printf("usage log insert failed: %v", err)
	}
}
