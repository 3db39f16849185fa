package usecase

import (
	"encoding/json"
	"time"

	"github.com/dhealy/applytrack/internal/model"
	"github.com/google/uuid"
)

// Store interfaces consumed by the usecases. The gorm repositories satisfy
// them; tests substitute in-memory fakes.

type JobStore interface {
	Create(job *model.Job) error
	FindByID(id string) (*model.Job, error)
	FindByURL(url string) (*model.Job, error)
	List(filter, query string, limit, offset int) ([]model.Job, int64, error)
	UpdateStatus(id, status string) (*model.Job, error)
	UpdateMatch(job *model.Job, quality string, confidence int, reasoning string) error
	FindUnanalyzed(limit int) ([]model.Job, error)
	CountUnanalyzed() (int64, error)
	CountByStatus(status string) (int64, error)
	CountPerfectDiscovered() (int64, error)
}

type SettingsStore interface {
	All() (map[string]json.RawMessage, error)
	Upsert(key string, value json.RawMessage) error
	GetUserProfile() (model.CandidateProfile, error)
	GetFeedURLs() ([]string, error)
	GetDailyQuota() (int, error)
	GetBotEnabled() (bool, error)
}

type CoverLetterStore interface {
	Replace(letter *model.CoverLetter) error
	FindLatestByJob(jobID uuid.UUID) (*model.CoverLetter, error)
}

type ApplicationStore interface {
	Create(app *model.Application) error
	CountSince(t time.Time) (int64, error)
	CountByStatus(status string) (int64, error)
	Recent(limit int) ([]model.Application, error)
}

type UsageStore interface {
	Create(entry *model.AiUsageLog) error
}

type CompanyStore interface {
	FindByName(name string) (*model.Company, error)
}
