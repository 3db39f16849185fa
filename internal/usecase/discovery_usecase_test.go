package usecase

import (
	"context"
	"testing"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	feedA = "https://boards.test/a.rss"
	feedB = "https://boards.test/b.rss"
)

func newDiscoveryFixture() (*DiscoveryUsecase, *fakeJobStore, *fakeSettingsStore, *fakeFetcher, *fakeLLM) {
	jobs := &fakeJobStore{}
	settings := newFakeSettingsStore()
	usage := &fakeUsageStore{}
	fetcher := newFakeFetcher()
	llm := &fakeLLM{}
	return NewDiscoveryUsecase(jobs, settings, usage, fetcher, llm), jobs, settings, fetcher, llm
}

func TestDiscoveryRequiresConfiguredFeeds(t *testing.T) {
	uc, _, _, _, _ := newDiscoveryFixture()

	_, err := uc.Run(context.Background())

	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDiscoveryOneFeedFailingDoesNotAbortTheRest(t *testing.T) {
	uc, jobs, settings, fetcher, llm := newDiscoveryFixture()
	settings.feeds = []string{feedA, feedB}

	known := &model.Job{Title: "Known PM", Company: "Acme", URL: "https://jobs.test/known"}
	require.NoError(t, jobs.Create(known))

	fetcher.feeds[feedA] = "<rss>two items</rss>"
	fetcher.errs[feedB] = &apperror.TimeoutError{URL: feedB}
	llm.queueText(`[
		{"title":"New PM","company":"Beta","url":"https://jobs.test/new","remote":true},
		{"title":"Known PM","company":"Acme","url":"https://jobs.test/known"}
	]`)

	result, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.FeedsProcessed)
	assert.Equal(t, 1, result.NewJobs)
	assert.Equal(t, 1, result.DuplicatesSkipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], feedB)

	inserted, err := jobs.FindByURL("https://jobs.test/new")
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, model.SourceRSS, inserted.Source)
	assert.Equal(t, model.StatusDiscovered, inserted.Status)
	assert.Equal(t, "https://jobs.test/new", inserted.Fingerprint)
}

func TestDiscoverySkipsItemsMissingURLOrTitle(t *testing.T) {
	uc, jobs, settings, fetcher, llm := newDiscoveryFixture()
	settings.feeds = []string{feedA}
	fetcher.feeds[feedA] = "<rss/>"
	llm.queueText(`[
		{"title":"","company":"Acme","url":"https://jobs.test/1"},
		{"title":"PM","company":"Acme","url":""},
		{"title":"Good PM","company":"Acme","url":"https://jobs.test/2"}
	]`)

	result, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.NewJobs)
	assert.Len(t, jobs.jobs, 1)
}

func TestDiscoveryDefaultsCompanyToUnknown(t *testing.T) {
	uc, jobs, settings, fetcher, llm := newDiscoveryFixture()
	settings.feeds = []string{feedA}
	fetcher.feeds[feedA] = "<rss/>"
	llm.queueText(`[{"title":"PM","company":"","url":"https://jobs.test/3"}]`)

	_, err := uc.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs.jobs, 1)
	assert.Equal(t, "Unknown", jobs.jobs[0].Company)
}

func TestDiscoveryUnparseableCompletionYieldsZeroJobs(t *testing.T) {
	uc, jobs, settings, fetcher, llm := newDiscoveryFixture()
	settings.feeds = []string{feedA}
	fetcher.feeds[feedA] = "<rss/>"
	llm.queueText("This feed does not contain any job listings.")

	result, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.FeedsProcessed)
	assert.Equal(t, 0, result.NewJobs)
	assert.Empty(t, result.Errors)
	assert.Empty(t, jobs.jobs)
}

func TestDiscoveryUsesFeedTokenBudget(t *testing.T) {
	uc, _, settings, fetcher, llm := newDiscoveryFixture()
	settings.feeds = []string{feedA}
	fetcher.feeds[feedA] = "<rss/>"
	llm.queueText(`[]`)

	_, err := uc.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, llm.maxTokens, 1)
	assert.Equal(t, 4096, llm.maxTokens[0])
}
