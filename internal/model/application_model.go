package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses.
const (
	ApplicationPending      = "pending"
	ApplicationProcessing   = "processing"
	ApplicationSubmitted    = "submitted"
	ApplicationFailed       = "failed"
	ApplicationManualReview = "manual_review"
)

// Application types.
const (
	ApplicationTypeAutomated = "automated"
	ApplicationTypeAdHoc     = "ad_hoc"
	ApplicationTypeManual    = "manual"
)

// Application records having applied to a Job. A job gains at most one
// application once its status becomes applied.
type Application struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID            uuid.UUID  `gorm:"type:uuid;not null" json:"job_id"`
	Job              *Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	CoverLetterID    *uuid.UUID `gorm:"type:uuid" json:"cover_letter_id"`
	Status           string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ApplicationType  string     `gorm:"type:varchar(20)" json:"application_type"`
	SubmissionMethod string     `gorm:"type:varchar(50)" json:"submission_method"`
	FailureReason    *string    `gorm:"type:text" json:"failure_reason"`
	RetryCount       int        `json:"retry_count"`
	UserRating       *int       `json:"user_rating"`
	UserNotes        *string    `gorm:"type:text" json:"user_notes"`
	ApplicationDate  time.Time  `gorm:"autoCreateTime" json:"application_date"`
}

func (Application) TableName() string {
	return "applications"
}
