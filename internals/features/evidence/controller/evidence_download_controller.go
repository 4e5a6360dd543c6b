package controller

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
	evidenceService "akreditasiku_backend/internals/features/evidence/service"
	helper "akreditasiku_backend/internals/helpers"
)

type EvidenceDownloadController struct {
	DB *gorm.DB
}

// GET /api/evidence/:id/download
// Cek izin di handler (bukan middleware) supaya percobaan tanpa izin
// tetap tercatat di activity log.
func (h *EvidenceDownloadController) Download(c *fiber.Ctx) error {
	ec := EvidenceController{DB: h.DB}
	ev, err := ec.load(c)
	if err != nil {
		return loadError(c, err)
	}

	actor := actorFromCtx(c)
	if !evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDownload) {
		activityService.Record(h.DB, c, actorIDPtr(actor), activityModel.ActivityUnauthorizedDownload,
			"Percobaan download tanpa izin: "+ev.EvidenceTitle,
			map[string]any{"evidence_id": ev.EvidenceID})
		return helper.JsonError(c, fiber.StatusForbidden,
			constants.PermissionError(constants.PermDownloadEvidence))
	}

	// bukti drive cukup dialihkan ke link-nya
	if ev.Type() == evidenceModel.TypeDrive {
		h.bumpCounter(ev)
		activityService.Record(h.DB, c, actorIDPtr(actor), activityModel.ActivityEvidenceDownloaded,
			"Download bukti (drive): "+ev.EvidenceTitle,
			map[string]any{"evidence_id": ev.EvidenceID, "type": evidenceModel.TypeDrive})
		return c.Redirect(*ev.EvidenceDriveLink, fiber.StatusFound)
	}

	stored := ""
	if ev.EvidenceFilePath != nil {
		stored = *ev.EvidenceFilePath
	}

	path, ok := evidenceService.ResolveEvidencePath(stored, evidenceService.CandidateDirs())
	if !ok {
		// row ada tapi file fisik hilang: 404, bukan 500
		return helper.JsonError(c, fiber.StatusNotFound, "File bukti tidak ditemukan di penyimpanan")
	}

	h.bumpCounter(ev)
	activityService.Record(h.DB, c, actorIDPtr(actor), activityModel.ActivityEvidenceDownloaded,
		"Download bukti: "+ev.EvidenceTitle,
		map[string]any{"evidence_id": ev.EvidenceID, "type": evidenceModel.TypeFile})

	downloadName := helper.SanitizeFilename(filepath.Base(stored))
	c.Set(fiber.HeaderContentType, constants.MIMEFromExt(stored))
	return c.Download(path, downloadName)
}

// bumpCounter best-effort: gagal update statistik tidak boleh menggagalkan download.
func (h *EvidenceDownloadController) bumpCounter(ev evidenceModel.EvidenceModel) {
	h.DB.Model(&evidenceModel.EvidenceModel{}).
		Where("evidence_id = ?", ev.EvidenceID).
		UpdateColumns(map[string]any{
			"evidence_downloads":          gorm.Expr("evidence_downloads + 1"),
			"evidence_last_downloaded_at": time.Now(),
		})
}
