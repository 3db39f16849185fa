package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/extract"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/prompt"
	"github.com/dhealy/applytrack/internal/sanitize"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/dhealy/applytrack/internal/util"
)

const feedExtractionMaxTokens = 4096

// DiscoveryResult summarizes one discovery run across all configured feeds.
type DiscoveryResult struct {
	FeedsProcessed    int      `json:"feeds_processed"`
	NewJobs           int      `json:"new_jobs"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors,omitempty"`
}

type feedOutcome struct {
	newJobs    int
	duplicates int
}

// DiscoveryUsecase scans the configured RSS/Atom feeds, extracts postings
// with the model, and inserts the ones not seen before. Feeds are processed
// independently so one broken feed never aborts the run.
type DiscoveryUsecase struct {
	jobs     JobStore
	settings SettingsStore
	usage    UsageStore
	fetcher  service.FetcherInterface
	llm      service.CompletionClientInterface
}

func NewDiscoveryUsecase(jobs JobStore, settings SettingsStore, usage UsageStore, fetcher service.FetcherInterface, llm service.CompletionClientInterface) *DiscoveryUsecase {
	return &DiscoveryUsecase{jobs: jobs, settings: settings, usage: usage, fetcher: fetcher, llm: llm}
}

func (uc *DiscoveryUsecase) Run(ctx context.Context) (*DiscoveryResult, error) {
	feeds, err := uc.settings.GetFeedURLs()
	if err != nil {
		return nil, err
	}
	if len(feeds) == 0 {
		return nil, &apperror.ValidationError{Message: "no RSS feed URLs configured; add them in settings"}
	}

	batch := util.BestEffortMap(feeds, func(feedURL string) string { return feedURL },
		func(feedURL string) (feedOutcome, error) {
			return uc.scanFeed(ctx, feedURL)
		})

	result := &DiscoveryResult{FeedsProcessed: len(feeds) - len(batch.Failures)}
	for _, outcome := range batch.Successes {
		result.NewJobs += outcome.newJobs
		result.DuplicatesSkipped += outcome.duplicates
	}
	for _, failure := range batch.Failures {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", failure.Label, failure.Err.Error()))
	}
	return result, nil
}

func (uc *DiscoveryUsecase) scanFeed(ctx context.Context, feedURL string) (feedOutcome, error) {
	var outcome feedOutcome

	raw, err := uc.fetcher.FetchFeed(ctx, feedURL)
	if err != nil {
		return outcome, err
	}

	text := sanitize.FeedText(raw)
	completion, err := uc.llm.Complete(ctx, prompt.FeedExtraction(text, feedURL), feedExtractionMaxTokens)
	if err != nil {
		return outcome, err
	}
	uc.logUsage(completion)

	// A feed the model could not parse yields zero jobs, not a failed feed.
	var items []extractedJob
	if err := extract.Array(completion.Text, &items); err != nil {
		items = nil
	}

	for _, item := range items {
		if strings.TrimSpace(item.URL) == "" || strings.TrimSpace(item.Title) == "" {
			continue
		}

		existing, err := uc.jobs.FindByURL(item.URL)
		if err != nil {
			continue
		}
		if existing != nil {
			outcome.duplicates++
			continue
		}

		company := item.Company
		if strings.TrimSpace(company) == "" {
			company = "Unknown"
		}

		job := &model.Job{
			Title:        item.Title,
			Company:      company,
			Location:     item.Location,
			Remote:       item.Remote,
			URL:          item.URL,
			Description:  item.Description,
			Requirements: item.Requirements,
			SalaryMin:    item.SalaryMin,
			SalaryMax:    item.SalaryMax,
			Source:       model.SourceRSS,
			Status:       model.StatusDiscovered,
			Fingerprint:  item.URL,
		}
		switch err := uc.jobs.Create(job); {
		case err == nil:
			outcome.newJobs++
		case isDuplicate(err):
			outcome.duplicates++
		}
	}

	return outcome, nil
}

func isDuplicate(err error) bool {
	var duplicate *apperror.DuplicateError
	return errors.As(err, &duplicate)
}

func (uc *DiscoveryUsecase) logUsage(completion *service.Completion) {
	entry := &model.AiUsageLog{
		Operation:    model.OperationFeedScan,
		Model:        completion.Model,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		Cost:         service.Cost(completion.Model, completion.InputTokens, completion.OutputTokens),
	}
	if err := uc.usage.Create(entry); err != nil {
		log.Printf("usage log insert failed: %v", err)
	}
}
