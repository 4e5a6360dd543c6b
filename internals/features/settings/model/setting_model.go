package model

import "time"

// Key yang dipakai aplikasi. Key lain tetap boleh disimpan
// (tabel ini key-value bebas), ini hanya yang dikenal sistem.
const (
	KeyInstitutionName = "institution_name"
	KeyAccreditor      = "accreditor_name"
	KeyContactEmail    = "contact_email"
	KeyMaxUploadMB     = "max_upload_mb"
)

type SettingModel struct {
	SettingKey       string    `gorm:"size:100;primaryKey;column:setting_key" json:"setting_key"`
	SettingValue     string    `gorm:"type:text;not null;default:'';column:setting_value" json:"setting_value"`
	SettingUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:setting_updated_at" json:"setting_updated_at"`
}

func (SettingModel) TableName() string { return "settings" }
