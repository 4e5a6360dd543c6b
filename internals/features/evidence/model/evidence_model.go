package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accModel "akreditasiku_backend/internals/features/accreditation/model"
	userModel "akreditasiku_backend/internals/features/users/model"
)

// Status review bukti. Transisi yang dimodelkan: pending → approved|rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Tipe bukti diturunkan dari kolom yang terisi: file_path ATAU drive_link,
// tepat satu di jalur normal.
const (
	TypeFile  = "file"
	TypeDrive = "drive"
)

type EvidenceModel struct {
	EvidenceID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:evidence_id" json:"evidence_id"`
	EvidenceTitle       string    `gorm:"size:200;not null;column:evidence_title" json:"evidence_title"`
	EvidenceDescription *string   `gorm:"type:text;column:evidence_description" json:"evidence_description,omitempty"`

	EvidenceFilePath  *string `gorm:"type:text;column:evidence_file_path" json:"evidence_file_path,omitempty"`
	EvidenceDriveLink *string `gorm:"type:text;column:evidence_drive_link" json:"evidence_drive_link,omitempty"`

	EvidenceParameterID    uuid.UUID  `gorm:"type:uuid;not null;column:evidence_parameter_id" json:"evidence_parameter_id"`
	EvidenceSubParameterID *uuid.UUID `gorm:"type:uuid;column:evidence_sub_parameter_id" json:"evidence_sub_parameter_id,omitempty"`
	EvidenceUploadedBy     uuid.UUID  `gorm:"type:uuid;not null;column:evidence_uploaded_by" json:"evidence_uploaded_by"`

	EvidenceStatus          string     `gorm:"size:16;not null;default:pending;column:evidence_status" json:"evidence_status"`
	EvidenceStatusComment   *string    `gorm:"type:text;column:evidence_status_comment" json:"evidence_status_comment,omitempty"`
	EvidenceStatusUpdatedBy *uuid.UUID `gorm:"type:uuid;column:evidence_status_updated_by" json:"evidence_status_updated_by,omitempty"`
	EvidenceStatusUpdatedAt *time.Time `gorm:"type:timestamptz;column:evidence_status_updated_at" json:"evidence_status_updated_at,omitempty"`

	EvidenceDownloads        int        `gorm:"not null;default:0;column:evidence_downloads" json:"evidence_downloads"`
	EvidenceLastDownloadedAt *time.Time `gorm:"type:timestamptz;column:evidence_last_downloaded_at" json:"evidence_last_downloaded_at,omitempty"`

	EvidenceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:evidence_created_at" json:"evidence_created_at"`
	EvidenceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:evidence_updated_at" json:"evidence_updated_at"`

	Parameter    *accModel.ParameterModel    `gorm:"foreignKey:EvidenceParameterID;references:ParameterID;constraint:OnDelete:CASCADE" json:"parameter,omitempty"`
	SubParameter *accModel.SubParameterModel `gorm:"foreignKey:EvidenceSubParameterID;references:SubParameterID;constraint:OnDelete:CASCADE" json:"sub_parameter,omitempty"`
	Uploader     *userModel.UserModel        `gorm:"foreignKey:EvidenceUploadedBy" json:"uploader,omitempty"`
}

func (EvidenceModel) TableName() string { return "evidence" }

func (m *EvidenceModel) BeforeCreate(tx *gorm.DB) error {
	if m.EvidenceID == uuid.Nil {
		m.EvidenceID = uuid.New()
	}
	return nil
}

// Type menurunkan tipe bukti dari kolom yang terisi.
func (m *EvidenceModel) Type() string {
	if m.EvidenceFilePath != nil && *m.EvidenceFilePath != "" {
		return TypeFile
	}
	return TypeDrive
}
