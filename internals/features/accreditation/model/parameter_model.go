package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParameterModel struct {
	ParameterID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:parameter_id" json:"parameter_id"`
	ParameterAreaLevelID uuid.UUID `gorm:"type:uuid;not null;column:parameter_area_level_id" json:"parameter_area_level_id"`
	ParameterName        string    `gorm:"size:200;not null;column:parameter_name" json:"parameter_name"`
	ParameterDescription *string   `gorm:"type:text;column:parameter_description" json:"parameter_description,omitempty"`
	ParameterWeight      float64   `gorm:"type:numeric(8,2);not null;default:0;column:parameter_weight" json:"parameter_weight"`
	ParameterCreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:parameter_created_at" json:"parameter_created_at"`
	ParameterUpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:parameter_updated_at" json:"parameter_updated_at"`

	AreaLevel *AreaLevelModel `gorm:"foreignKey:ParameterAreaLevelID;references:AreaLevelID;constraint:OnDelete:CASCADE" json:"area_level,omitempty"`
}

func (ParameterModel) TableName() string { return "parameters" }

func (m *ParameterModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParameterID == uuid.Nil {
		m.ParameterID = uuid.New()
	}
	return nil
}
