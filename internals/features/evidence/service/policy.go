package service

import (
	"github.com/google/uuid"

	"akreditasiku_backend/internals/constants"
	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
)

// Aksi yang dinilai policy.
const (
	ActionView     = "view"
	ActionEdit     = "edit"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionDownload = "download"
)

// Actor adalah potongan identitas caller yang relevan untuk policy:
// id + capability set hasil resolusi guard.
type Actor struct {
	ID          uuid.UUID
	Permissions []string
}

func (a Actor) Has(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// CanActOnEvidence adalah satu-satunya aturan "owner atau blanket-permission":
// edit/delete/view boleh bila caller memegang permission terkait ATAU adalah
// pengunggah asli. Approve dan download murni permission-based.
func CanActOnEvidence(actor Actor, ev evidenceModel.EvidenceModel, action string) bool {
	isOwner := actor.ID != uuid.Nil && actor.ID == ev.EvidenceUploadedBy

	switch action {
	case ActionView:
		return actor.Has(constants.PermViewEvidence) || isOwner
	case ActionEdit:
		return actor.Has(constants.PermEditEvidence) || isOwner
	case ActionDelete:
		return actor.Has(constants.PermDeleteEvidence) || isOwner
	case ActionApprove:
		return actor.Has(constants.PermApproveEvidence)
	case ActionDownload:
		return actor.Has(constants.PermDownloadEvidence)
	default:
		return false
	}
}
