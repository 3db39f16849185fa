package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CoverLetter is generated text tied to exactly one Job. At most one current
// letter is kept per job: generation deletes older rows before inserting
// (last-write-wins, not versioned).
type CoverLetter struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	Content            string            `gorm:"type:text;not null" json:"content"`
	TemplateUsed       string            `gorm:"type:varchar(50)" json:"template_used"`
	CustomizationNotes datatypes.JSONMap `gorm:"type:jsonb" json:"customization_notes"`
	CreatedAt          time.Time         `json:"created_at"`
}

func (CoverLetter) TableName() string {
	return "cover_letters"
}
