package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
)

/* =========================================================
   UPLOAD
   ========================================================= */

// Upload dikirim multipart/form-data: field di bawah + file "evidence_file"
// bila evidence_type = file.
type UploadEvidenceRequest struct {
	Title       string  `json:"evidence_title" form:"evidence_title" validate:"required,min=1,max=200"`
	Description *string `json:"evidence_description" form:"evidence_description"`
	Type        string  `json:"evidence_type" form:"evidence_type" validate:"required,oneof=file drive"`
	DriveLink   *string `json:"evidence_drive_link" form:"evidence_drive_link"`

	// tepat satu dari keduanya; sub_parameter menurunkan parameter induknya
	ParameterID    *uuid.UUID `json:"parameter_id" form:"parameter_id"`
	SubParameterID *uuid.UUID `json:"sub_parameter_id" form:"sub_parameter_id"`
}

func (r *UploadEvidenceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
	if r.DriveLink != nil {
		l := strings.TrimSpace(*r.DriveLink)
		if l == "" {
			r.DriveLink = nil
		} else {
			r.DriveLink = &l
		}
	}
}

/* =========================================================
   EDIT
   ========================================================= */

type UpdateEvidenceRequest struct {
	Title       *string `json:"evidence_title" form:"evidence_title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"evidence_description" form:"evidence_description"`
	DriveLink   *string `json:"evidence_drive_link" form:"evidence_drive_link"`
}

/* =========================================================
   REVIEW
   ========================================================= */

type ReviewEvidenceRequest struct {
	Action  string  `json:"action" form:"action" validate:"required,oneof=approve reject"`
	Comment *string `json:"comment" form:"comment"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type EvidenceResponse struct {
	EvidenceID     uuid.UUID  `json:"evidence_id"`
	Title          string     `json:"evidence_title"`
	Description    *string    `json:"evidence_description,omitempty"`
	Type           string     `json:"evidence_type"` // file | drive
	FilePath       *string    `json:"evidence_file_path,omitempty"`
	DriveLink      *string    `json:"evidence_drive_link,omitempty"`
	ParameterID    uuid.UUID  `json:"parameter_id"`
	SubParameterID *uuid.UUID `json:"sub_parameter_id,omitempty"`

	UploadedBy   uuid.UUID `json:"uploaded_by"`
	UploaderName string    `json:"uploader_name,omitempty"`

	Status          string     `json:"status"`
	StatusComment   *string    `json:"status_comment,omitempty"`
	StatusUpdatedBy *uuid.UUID `json:"status_updated_by,omitempty"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty"`

	Downloads        int        `json:"downloads"`
	LastDownloadedAt *time.Time `json:"last_downloaded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	// kapabilitas caller per baris (owner-or-blanket)
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

func FromEvidenceModel(ev evidenceModel.EvidenceModel, canEdit, canDelete bool) EvidenceResponse {
	resp := EvidenceResponse{
		EvidenceID:       ev.EvidenceID,
		Title:            ev.EvidenceTitle,
		Description:      ev.EvidenceDescription,
		Type:             ev.Type(),
		FilePath:         ev.EvidenceFilePath,
		DriveLink:        ev.EvidenceDriveLink,
		ParameterID:      ev.EvidenceParameterID,
		SubParameterID:   ev.EvidenceSubParameterID,
		UploadedBy:       ev.EvidenceUploadedBy,
		Status:           ev.EvidenceStatus,
		StatusComment:    ev.EvidenceStatusComment,
		StatusUpdatedBy:  ev.EvidenceStatusUpdatedBy,
		StatusUpdatedAt:  ev.EvidenceStatusUpdatedAt,
		Downloads:        ev.EvidenceDownloads,
		LastDownloadedAt: ev.EvidenceLastDownloadedAt,
		CreatedAt:        ev.EvidenceCreatedAt,
		CanEdit:          canEdit,
		CanDelete:        canDelete,
	}
	if ev.Uploader != nil {
		resp.UploaderName = ev.Uploader.FullName
	}
	return resp
}
