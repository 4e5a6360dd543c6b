package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	evidenceDTO "akreditasiku_backend/internals/features/evidence/dto"
	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
	evidenceService "akreditasiku_backend/internals/features/evidence/service"
	helper "akreditasiku_backend/internals/helpers"
)

type EvidenceReviewController struct {
	DB *gorm.DB
}

// POST /api/evidence/:id/review  {action: approve|reject, comment}
// Status ditimpa apa adanya: review ulang mengganti hasil sebelumnya
// tanpa jejak selain activity log.
func (h *EvidenceReviewController) Review(c *fiber.Ctx) error {
	ec := EvidenceController{DB: h.DB}
	ev, err := ec.load(c)
	if err != nil {
		return loadError(c, err)
	}

	var req evidenceDTO.ReviewEvidenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor := actorFromCtx(c)
	if !evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionApprove) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak mereview bukti ini")
	}

	newStatus := evidenceModel.StatusApproved
	activityType := activityModel.ActivityEvidenceApproved
	message := "Bukti berhasil disetujui"
	if req.Action == "reject" {
		newStatus = evidenceModel.StatusRejected
		activityType = activityModel.ActivityEvidenceRejected
		message = "Bukti berhasil ditolak"
	}

	now := time.Now()
	updates := map[string]any{
		"evidence_status":            newStatus,
		"evidence_status_comment":    req.Comment,
		"evidence_status_updated_by": actor.ID,
		"evidence_status_updated_at": now,
	}
	if err := h.DB.Model(&ev).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan hasil review")
	}

	activityService.Record(h.DB, c, &actor.ID, activityType,
		"Review bukti: "+ev.EvidenceTitle+" → "+newStatus,
		map[string]any{
			"evidence_id":     ev.EvidenceID,
			"previous_status": ev.EvidenceStatus,
			"new_status":      newStatus,
		})

	ev.EvidenceStatus = newStatus
	ev.EvidenceStatusComment = req.Comment
	ev.EvidenceStatusUpdatedBy = &actor.ID
	ev.EvidenceStatusUpdatedAt = &now

	return helper.JsonUpdated(c, message, evidenceDTO.FromEvidenceModel(ev,
		evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionEdit),
		evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDelete)))
}
