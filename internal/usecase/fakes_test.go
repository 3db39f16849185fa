package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/dhealy/applytrack/internal/model"
	"github.com/dhealy/applytrack/internal/service"
	"github.com/google/uuid"
)

// In-memory stand-ins for the stores and outbound services.

type fakeJobStore struct {
	jobs      []*model.Job
	createErr error
}

func (f *fakeJobStore) Create(job *model.Job) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, j := range f.jobs {
		if j.URL == job.URL {
			return &apperror.DuplicateError{JobID: j.ID}
		}
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.DiscoveredDate = time.Now()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobStore) FindByID(id string) (*model.Job, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, &apperror.NotFoundError{Resource: "job"}
	}
	for _, j := range f.jobs {
		if j.ID == parsed {
			return j, nil
		}
	}
	return nil, &apperror.NotFoundError{Resource: "job"}
}

func (f *fakeJobStore) FindByURL(url string) (*model.Job, error) {
	for _, j := range f.jobs {
		if j.URL == url {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeJobStore) List(filter, query string, limit, offset int) ([]model.Job, int64, error) {
	var out []model.Job
	for i, j := range f.jobs {
		if i >= offset && len(out) < limit {
			out = append(out, *j)
		}
	}
	return out, int64(len(f.jobs)), nil
}

func (f *fakeJobStore) UpdateStatus(id, status string) (*model.Job, error) {
	job, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	job.Status = status
	return job, nil
}

func (f *fakeJobStore) UpdateMatch(job *model.Job, quality string, confidence int, reasoning string) error {
	job.MatchQuality = &quality
	job.MatchConfidence = &confidence
	job.MatchReasoning = &reasoning
	for _, j := range f.jobs {
		if j.ID == job.ID {
			j.MatchQuality = &quality
			j.MatchConfidence = &confidence
			j.MatchReasoning = &reasoning
		}
	}
	return nil
}

func (f *fakeJobStore) FindUnanalyzed(limit int) ([]model.Job, error) {
	var out []model.Job
	for _, j := range f.jobs {
		if j.MatchQuality == nil && len(out) < limit {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) CountUnanalyzed() (int64, error) {
	var count int64
	for _, j := range f.jobs {
		if j.MatchQuality == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeJobStore) CountByStatus(status string) (int64, error) {
	var count int64
	for _, j := range f.jobs {
		if j.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeJobStore) CountPerfectDiscovered() (int64, error) {
	var count int64
	for _, j := range f.jobs {
		if j.MatchQuality != nil && *j.MatchQuality == model.MatchPerfect && j.Status == model.StatusDiscovered {
			count++
		}
	}
	return count, nil
}

type fakeSettingsStore struct {
	raw     map[string]json.RawMessage
	profile model.CandidateProfile
	feeds   []string
	quota   int
	enabled bool
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{raw: map[string]json.RawMessage{}, quota: 8, enabled: true}
}

func (f *fakeSettingsStore) All() (map[string]json.RawMessage, error) { return f.raw, nil }

func (f *fakeSettingsStore) Upsert(key string, value json.RawMessage) error {
	f.raw[key] = value
	return nil
}

func (f *fakeSettingsStore) GetUserProfile() (model.CandidateProfile, error) { return f.profile, nil }
func (f *fakeSettingsStore) GetFeedURLs() ([]string, error)                  { return f.feeds, nil }
func (f *fakeSettingsStore) GetDailyQuota() (int, error)                     { return f.quota, nil }
func (f *fakeSettingsStore) GetBotEnabled() (bool, error)                    { return f.enabled, nil }

type fakeUsageStore struct {
	entries []*model.AiUsageLog
}

func (f *fakeUsageStore) Create(entry *model.AiUsageLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeCoverLetterStore struct {
	letters map[uuid.UUID]*model.CoverLetter
}

func newFakeCoverLetterStore() *fakeCoverLetterStore {
	return &fakeCoverLetterStore{letters: map[uuid.UUID]*model.CoverLetter{}}
}

func (f *fakeCoverLetterStore) Replace(letter *model.CoverLetter) error {
	if letter.ID == uuid.Nil {
		letter.ID = uuid.New()
	}
	letter.CreatedAt = time.Now()
	f.letters[letter.JobID] = letter
	return nil
}

func (f *fakeCoverLetterStore) FindLatestByJob(jobID uuid.UUID) (*model.CoverLetter, error) {
	return f.letters[jobID], nil
}

type fakeApplicationStore struct {
	apps []*model.Application
}

func (f *fakeApplicationStore) Create(app *model.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.ApplicationDate.IsZero() {
		app.ApplicationDate = time.Now()
	}
	f.apps = append(f.apps, app)
	return nil
}

func (f *fakeApplicationStore) CountSince(t time.Time) (int64, error) {
	var count int64
	for _, a := range f.apps {
		if !a.ApplicationDate.Before(t) {
			count++
		}
	}
	return count, nil
}

func (f *fakeApplicationStore) CountByStatus(status string) (int64, error) {
	var count int64
	for _, a := range f.apps {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeApplicationStore) Recent(limit int) ([]model.Application, error) {
	var out []model.Application
	for i := len(f.apps) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.apps[i])
	}
	return out, nil
}

type fakeCompanyStore struct {
	companies []*model.Company
}

func (f *fakeCompanyStore) FindByName(name string) (*model.Company, error) {
	for _, c := range f.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

// fakeLLM replays queued completions in order and records every prompt.
type llmReply struct {
	completion *service.Completion
	err        error
}

type fakeLLM struct {
	prompts   []string
	maxTokens []int
	replies   []llmReply
}

func (f *fakeLLM) queueText(text string) {
	f.replies = append(f.replies, llmReply{completion: &service.Completion{
		Text:         text,
		InputTokens:  150,
		OutputTokens: 80,
		Model:        "claude-sonnet-4-6",
	}})
}

func (f *fakeLLM) queueError(err error) {
	f.replies = append(f.replies, llmReply{err: err})
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, maxTokens int) (*service.Completion, error) {
	f.prompts = append(f.prompts, prompt)
	f.maxTokens = append(f.maxTokens, maxTokens)
	idx := len(f.prompts) - 1
	if idx >= len(f.replies) {
		return nil, &service.CompletionError{Cause: context.Canceled}
	}
	reply := f.replies[idx]
	if reply.err != nil {
		return nil, reply.err
	}
	return reply.completion, nil
}

// fakeFetcher serves canned bodies per URL.
type fakeFetcher struct {
	pages map[string]string
	feeds map[string]string
	errs  map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{}, feeds: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.pages[url], nil
}

func (f *fakeFetcher) FetchFeed(_ context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.feeds[url], nil
}
