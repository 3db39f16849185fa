package model

import (
	"time"

	"github.com/google/uuid"
)

// Job lifecycle statuses.
const (
	StatusDiscovered = "discovered"
	StatusQueued     = "queued"
	StatusApplied    = "applied"
	StatusSkipped    = "skipped"
)

// How a job entered the system.
const (
	SourceManual    = "manual"
	SourceRSS       = "rss"
	SourceURLImport = "url_import"
)

// Match qualities assigned by the scorer.
const (
	MatchPerfect  = "perfect"
	MatchWiderNet = "wider_net"
	MatchNoMatch  = "no_match"
)

// ValidStatuses is the full status set, for request validation.
var ValidStatuses = []string{StatusDiscovered, StatusQueued, StatusApplied, StatusSkipped}

// Job is a discovered or imported posting. URL is unique; a duplicate insert
// is rejected by the store and handled as a soft error, never a crash.
// Jobs are mutated by the scorer and by status changes, never deleted.
type Job struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Company         string     `gorm:"not null" json:"company"`
	CompanyID       *uuid.UUID `gorm:"type:uuid" json:"company_id"`
	Location        *string    `json:"location"`
	Remote          bool       `json:"remote"`
	URL             string     `gorm:"uniqueIndex;not null" json:"url"`
	Description     *string    `gorm:"type:text" json:"description"`
	Requirements    *string    `gorm:"type:text" json:"requirements"`
	SalaryMin       *int       `json:"salary_min"`
	SalaryMax       *int       `json:"salary_max"`
	Source          string     `gorm:"type:varchar(20);default:'manual'" json:"source"`
	Status          string     `gorm:"type:varchar(20);default:'discovered'" json:"status"`
	MatchQuality    *string    `gorm:"type:varchar(20)" json:"match_quality"`
	MatchConfidence *int       `json:"match_confidence"`
	MatchReasoning  *string    `gorm:"type:text" json:"match_reasoning"`
	Fingerprint     string     `json:"fingerprint"` // dedup key, currently the URL
	DiscoveredDate  time.Time  `gorm:"autoCreateTime" json:"discovered_date"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
