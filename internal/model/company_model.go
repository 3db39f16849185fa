package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is a denormalized lookup by name, used to optionally tag a manually
// added Job with a company reference.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Company) TableName() string {
	return "companies"
}
