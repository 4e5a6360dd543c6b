package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Jenis aktivitas yang dicatat. Baris log bersifat append-only:
// tidak ada endpoint update/delete selain pruning berbasis umur.
const (
	ActivityLogin           = "login"
	ActivityLoginFailed     = "login_failed"
	ActivityLogout          = "logout"
	ActivityUserCreated     = "user_created"
	ActivityUserUpdated     = "user_updated"
	ActivityUserDeleted     = "user_deleted"
	ActivityProgramCreated  = "program_created"
	ActivityProgramUpdated  = "program_updated"
	ActivityProgramDeleted  = "program_deleted"
	ActivityAreaCreated     = "area_level_created"
	ActivityAreaUpdated     = "area_level_updated"
	ActivityAreaDeleted     = "area_level_deleted"
	ActivityParamCreated    = "parameter_created"
	ActivityParamUpdated    = "parameter_updated"
	ActivityParamDeleted    = "parameter_deleted"
	ActivitySubParamCreated = "sub_parameter_created"
	ActivitySubParamUpdated = "sub_parameter_updated"
	ActivitySubParamDeleted = "sub_parameter_deleted"

	ActivityEvidenceUploaded   = "evidence_uploaded"
	ActivityEvidenceUpdated    = "evidence_updated"
	ActivityEvidenceDeleted    = "evidence_deleted"
	ActivityEvidenceApproved   = "evidence_approved"
	ActivityEvidenceRejected   = "evidence_rejected"
	ActivityEvidenceDownloaded = "evidence_downloaded"

	// Percobaan akses tanpa izin dicatat sebagai tipe tersendiri
	ActivityUnauthorizedDownload = "unauthorized_download"

	ActivitySettingUpdated = "setting_updated"
	ActivityBackupCreated  = "backup_created"
	ActivityBackupDeleted  = "backup_deleted"
	ActivityLogPruned      = "activity_log_pruned"
)

type ActivityLogModel struct {
	ActivityLogID          uint64         `gorm:"primaryKey;column:activity_log_id" json:"activity_log_id"`
	ActivityLogUserID      *uuid.UUID     `gorm:"type:uuid;column:activity_log_user_id" json:"activity_log_user_id"`
	ActivityLogType        string         `gorm:"size:64;not null;column:activity_log_type" json:"activity_log_type"`
	ActivityLogDescription string         `gorm:"type:text;not null;column:activity_log_description" json:"activity_log_description"`
	ActivityLogMetadata    datatypes.JSON `gorm:"type:jsonb;column:activity_log_metadata" json:"activity_log_metadata,omitempty"`
	ActivityLogIPAddress   string         `gorm:"size:45;column:activity_log_ip_address" json:"activity_log_ip_address"`
	ActivityLogUserAgent   string         `gorm:"type:text;column:activity_log_user_agent" json:"activity_log_user_agent"`
	ActivityLogCreatedAt   time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:activity_log_created_at" json:"activity_log_created_at"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
