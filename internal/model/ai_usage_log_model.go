package model

import (
	"time"

	"github.com/google/uuid"
)

// AI operations recorded in the usage log.
const (
	OperationURLImport   = "url_import"
	OperationFeedScan    = "feed_scan"
	OperationJobScoring  = "job_scoring"
	OperationCoverLetter = "cover_letter_generation"
)

// AiUsageLog is an append-only record of one LLM invocation. Rows are never
// mutated or deleted.
type AiUsageLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID         *uuid.UUID `gorm:"type:uuid" json:"job_id"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"application_id"`
	Operation     string     `gorm:"type:varchar(50);not null" json:"operation"`
	Model         string     `gorm:"type:varchar(50)" json:"model"`
	InputTokens   int        `json:"input_tokens"`
	OutputTokens  int        `json:"output_tokens"`
	Cost          float64    `json:"cost"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (AiUsageLog) TableName() string {
	return "ai_usage_logs"
}
