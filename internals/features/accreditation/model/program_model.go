package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramModel adalah akar hirarki akreditasi:
// Program → AreaLevel → Parameter → SubParameter.
type ProgramModel struct {
	ProgramID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:program_id" json:"program_id"`
	ProgramName        string    `gorm:"size:160;not null;column:program_name" json:"program_name"`
	ProgramDescription *string   `gorm:"type:text;column:program_description" json:"program_description,omitempty"`
	ProgramCreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:program_created_at" json:"program_created_at"`
	ProgramUpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:program_updated_at" json:"program_updated_at"`
}

func (ProgramModel) TableName() string { return "programs" }

func (m *ProgramModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgramID == uuid.Nil {
		m.ProgramID = uuid.New()
	}
	return nil
}
