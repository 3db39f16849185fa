package usecase

import (
	"time"

	"github.com/dhealy/applytrack/internal/model"
	"github.com/google/uuid"
)

// RecentApplication is one row in the dashboard's recent activity list.
type RecentApplication struct {
	ID              uuid.UUID `json:"id"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	Status          string    `json:"status"`
	ApplicationDate time.Time `json:"application_date"`
}

// DashboardStats is the aggregate view backing the dashboard.
type DashboardStats struct {
	AppliedToday       int64               `json:"applied_today"`
	AppliedThisWeek    int64               `json:"applied_this_week"`
	TotalSubmitted     int64               `json:"total_submitted"`
	QueuedJobs         int64               `json:"queued_jobs"`
	PerfectMatches     int64               `json:"perfect_matches"`
	PendingAnalysis    int64               `json:"pending_analysis"`
	DailyQuota         int                 `json:"daily_quota"`
	BotEnabled         bool                `json:"bot_enabled"`
	RecentApplications []RecentApplication `json:"recent_applications"`
}

const recentApplicationLimit = 5

// DashboardUsecase aggregates counters and recent activity for the
// dashboard.
type DashboardUsecase struct {
	jobs         JobStore
	applications ApplicationStore
	settings     SettingsStore
}

func NewDashboardUsecase(jobs JobStore, applications ApplicationStore, settings SettingsStore) *DashboardUsecase {
	return &DashboardUsecase{jobs: jobs, applications: applications, settings: settings}
}

func (uc *DashboardUsecase) Stats(now time.Time) (*DashboardStats, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := startOfWeek(todayStart)

	stats := &DashboardStats{}

	var err error
	if stats.AppliedToday, err = uc.applications.CountSince(todayStart); err != nil {
		return nil, err
	}
	if stats.AppliedThisWeek, err = uc.applications.CountSince(weekStart); err != nil {
		return nil, err
	}
	if stats.TotalSubmitted, err = uc.applications.CountByStatus(model.ApplicationSubmitted); err != nil {
		return nil, err
	}
	if stats.QueuedJobs, err = uc.jobs.CountByStatus(model.StatusQueued); err != nil {
		return nil, err
	}
	if stats.PerfectMatches, err = uc.jobs.CountPerfectDiscovered(); err != nil {
		return nil, err
	}
	if stats.PendingAnalysis, err = uc.jobs.CountUnanalyzed(); err != nil {
		return nil, err
	}
	if stats.DailyQuota, err = uc.settings.GetDailyQuota(); err != nil {
		return nil, err
	}
	if stats.BotEnabled, err = uc.settings.GetBotEnabled(); err != nil {
		return nil, err
	}

	recent, err := uc.applications.Recent(recentApplicationLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentApplications = make([]RecentApplication, 0, len(recent))
	for _, app := range recent {
		row := RecentApplication{
			ID:              app.ID,
			Status:          app.Status,
			ApplicationDate: app.ApplicationDate,
		}
		if app.Job != nil {
			row.JobTitle = app.Job.Title
			row.Company = app.Job.Company
		}
		stats.RecentApplications = append(stats.RecentApplications, row)
	}
	return stats, nil
}

// startOfWeek returns midnight of the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}
