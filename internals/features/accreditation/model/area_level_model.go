package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AreaLevelModel struct {
	AreaLevelID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:area_level_id" json:"area_level_id"`
	AreaLevelProgramID   uuid.UUID `gorm:"type:uuid;not null;column:area_level_program_id" json:"area_level_program_id"`
	AreaLevelName        string    `gorm:"size:160;not null;column:area_level_name" json:"area_level_name"`
	AreaLevelDescription *string   `gorm:"type:text;column:area_level_description" json:"area_level_description,omitempty"`
	AreaLevelCreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:area_level_created_at" json:"area_level_created_at"`
	AreaLevelUpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:area_level_updated_at" json:"area_level_updated_at"`

	Program *ProgramModel `gorm:"foreignKey:AreaLevelProgramID;references:ProgramID;constraint:OnDelete:CASCADE" json:"program,omitempty"`
}

func (AreaLevelModel) TableName() string { return "area_levels" }

func (m *AreaLevelModel) BeforeCreate(tx *gorm.DB) error {
	if m.AreaLevelID == uuid.Nil {
		m.AreaLevelID = uuid.New()
	}
	return nil
}
