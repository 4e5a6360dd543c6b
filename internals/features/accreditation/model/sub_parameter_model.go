package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubParameterModel adalah granularitas kedua opsional di bawah parameter.
type SubParameterModel struct {
	SubParameterID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:sub_parameter_id" json:"sub_parameter_id"`
	SubParameterParameterID uuid.UUID `gorm:"type:uuid;not null;column:sub_parameter_parameter_id" json:"sub_parameter_parameter_id"`
	SubParameterName        string    `gorm:"size:200;not null;column:sub_parameter_name" json:"sub_parameter_name"`
	SubParameterDescription *string   `gorm:"type:text;column:sub_parameter_description" json:"sub_parameter_description,omitempty"`
	SubParameterWeight      float64   `gorm:"type:numeric(8,2);not null;default:0;column:sub_parameter_weight" json:"sub_parameter_weight"`
	SubParameterCreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:sub_parameter_created_at" json:"sub_parameter_created_at"`
	SubParameterUpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:sub_parameter_updated_at" json:"sub_parameter_updated_at"`

	Parameter *ParameterModel `gorm:"foreignKey:SubParameterParameterID;references:ParameterID;constraint:OnDelete:CASCADE" json:"parameter,omitempty"`
}

func (SubParameterModel) TableName() string { return "sub_parameters" }

func (m *SubParameterModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubParameterID == uuid.Nil {
		m.SubParameterID = uuid.New()
	}
	return nil
}
