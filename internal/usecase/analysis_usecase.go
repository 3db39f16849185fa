package usecase

import (
	"context"
	"log"
	"math"

	"github.com/dhealy/applytrack/internal/extract"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/prompt"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/dhealy/applytrack/internal/util"
	"github.com/google/uuid"
)

const (
	scoringMaxTokens = 1024

	// batchScoreLimit caps one analyze-all pass; the client polls the
	// pending count and calls again until it reaches zero.
	batchScoreLimit = 10
)

// matchAnalysis is the verdict shape requested from the model. Confidence
// arrives as a float and is rounded and clamped before storage.
type matchAnalysis struct {
	MatchQuality    string  `json:"match_quality"`
	MatchConfidence float64 `json:"match_confidence"`
	MatchReasoning  string  `json:"match_reasoning"`
}

// AnalyzedJob is one scored job in a batch response.
type AnalyzedJob struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	MatchQuality    string    `json:"match_quality"`
	MatchConfidence int       `json:"match_confidence"`
}

// BatchAnalysisResult summarizes one analyze-all pass.
type BatchAnalysisResult struct {
	Analyzed  int           `json:"analyzed"`
	Remaining int64         `json:"remaining"`
	TotalCost float64       `json:"total_cost"`
	Results   []AnalyzedJob `json:"results"`
	Errors    []string      `json:"errors,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// AnalysisUsecase scores jobs against the candidate profile.
type AnalysisUsecase struct {
	jobs     JobStore
	settings SettingsStore
	usage    UsageStore
	llm      service.CompletionClientInterface
}

func NewAnalysisUsecase(jobs JobStore, settings SettingsStore, usage UsageStore, llm service.CompletionClientInterface) *AnalysisUsecase {
	return &AnalysisUsecase{jobs: jobs, settings: settings, usage: usage, llm: llm}
}

// AnalyzeJob scores a single job and persists the verdict on its row.
func (uc *AnalysisUsecase) AnalyzeJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := uc.jobs.FindByID(id)
	if err != nil {
		return nil, err
	}

	profile, err := uc.settings.GetUserProfile()
	if err != nil {
		return nil, err
	}

	if _, err := uc.scoreJob(ctx, job, profile); err != nil {
		return nil, err
	}
	return job, nil
}

// AnalyzeBatch scores up to batchScoreLimit unanalyzed jobs. One job's
// failure is reported but never stops the rest of the batch.
func (uc *AnalysisUsecase) AnalyzeBatch(ctx context.Context) (*BatchAnalysisResult, error) {
	pending, err := uc.jobs.FindUnanalyzed(batchScoreLimit)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &BatchAnalysisResult{Message: "all jobs are already analyzed"}, nil
	}

	profile, err := uc.settings.GetUserProfile()
	if err != nil {
		return nil, err
	}

	var totalCost float64
	batch := util.BestEffortMap(pending, func(j model.Job) string { return j.Title },
		func(j model.Job) (AnalyzedJob, error) {
			job := j
			cost, err := uc.scoreJob(ctx, &job, profile)
			if err != nil {
				return AnalyzedJob{}, err
			}
			totalCost += cost
			return AnalyzedJob{
				ID:              job.ID,
				Title:           job.Title,
				Company:         job.Company,
				MatchQuality:    derefString(job.MatchQuality),
				MatchConfidence: derefInt(job.MatchConfidence),
			}, nil
		})

	remaining, err := uc.jobs.CountUnanalyzed()
	if err != nil {
		return nil, err
	}

	result := &BatchAnalysisResult{
		Analyzed:  len(batch.Successes),
		Remaining: remaining,
		TotalCost: service.RoundCost(totalCost),
		Results:   batch.Successes,
	}
	for _, failure := range batch.Failures {
		result.Errors = append(result.Errors, failure.Label+": "+failure.Err.Error())
	}
	return result, nil
}

// CountUnanalyzed reports how many jobs still await scoring.
func (uc *AnalysisUsecase) CountUnanalyzed() (int64, error) {
	return uc.jobs.CountUnanalyzed()
}

func (uc *AnalysisUsecase) scoreJob(ctx context.Context, job *model.Job, profile model.CandidateProfile) (float64, error) {
	completion, err := uc.llm.Complete(ctx, prompt.MatchScoring(profile, *job), scoringMaxTokens)
	if err != nil {
		return 0, err
	}

	var analysis matchAnalysis
	if err := extract.Object(completion.Text, &analysis); err != nil {
		return 0, err
	}

	quality := normalizeQuality(analysis.MatchQuality)
	confidence := clampConfidence(analysis.MatchConfidence)
	if err := uc.jobs.UpdateMatch(job, quality, confidence, analysis.MatchReasoning); err != nil {
		return 0, err
	}

	cost := service.Cost(completion.Model, completion.InputTokens, completion.OutputTokens)
	uc.logUsage(job.ID, completion, cost)
	return cost, nil
}

// normalizeQuality coerces any off-script verdict to the middle tier rather
// than rejecting the whole analysis.
func normalizeQuality(quality string) string {
	switch quality {
	case model.MatchPerfect, model.MatchWiderNet, model.MatchNoMatch:
		return quality
	default:
		return model.MatchWiderNet
	}
}

func clampConfidence(confidence float64) int {
	rounded := int(math.Round(confidence))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func (uc *AnalysisUsecase) logUsage(jobID uuid.UUID, completion *service.Completion, cost float64) {
	entry := &model.AiUsageLog{
		JobID:        &jobID,
		Operation:    model.OperationJobScoring,
		Model:        completion.Model,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		Cost:         cost,
	}
	if err := uc.usage.Create(entry); err != nil {
		log.Printf("usage log insert failed: %v", err)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
