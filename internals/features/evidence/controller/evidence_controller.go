package controller

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accModel "akreditasiku_backend/internals/features/accreditation/model"
	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	evidenceDTO "akreditasiku_backend/internals/features/evidence/dto"
	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
	evidenceService "akreditasiku_backend/internals/features/evidence/service"
	helper "akreditasiku_backend/internals/helpers"

	"akreditasiku_backend/internals/configs"
	"akreditasiku_backend/internals/constants"
)

type EvidenceController struct {
	DB *gorm.DB
}

func actorFromCtx(c *fiber.Ctx) evidenceService.Actor {
	actor := evidenceService.Actor{Permissions: helper.GetPermissionsFromLocals(c)}
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		actor.ID = id
	}
	return actor
}

// actorIDPtr: FK activity_logs.user_id tidak boleh diisi uuid nol.
func actorIDPtr(a evidenceService.Actor) *uuid.UUID {
	if a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}

// POST /api/evidence (multipart)
// Tepat satu dari file upload / drive link; status selalu dipaksa pending.
func (h *EvidenceController) Upload(c *fiber.Ctx) error {
	var req evidenceDTO.UploadEvidenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if req.Title == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Judul bukti wajib diisi")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor := actorFromCtx(c)
	if actor.ID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !actor.Has(constants.PermAddEvidence) {
		return helper.JsonError(c, fiber.StatusForbidden,
			constants.PermissionError(constants.PermAddEvidence))
	}

	// Node induk: sub_parameter menurunkan parameter-nya, dan keduanya disimpan.
	parameterID, subParameterID, parentName, err := h.resolveParent(req.ParameterID, req.SubParameterID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := evidenceModel.EvidenceModel{
		EvidenceTitle:          req.Title,
		EvidenceDescription:    req.Description,
		EvidenceParameterID:    parameterID,
		EvidenceSubParameterID: subParameterID,
		EvidenceUploadedBy:     actor.ID,
		EvidenceStatus:         evidenceModel.StatusPending,
	}

	switch req.Type {
	case evidenceModel.TypeFile:
		fh, err := c.FormFile("evidence_file")
		if err != nil || fh == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada file yang dipilih")
		}
		stored, mime, err := evidenceService.SaveEvidenceFile(fh, configs.UploadDir)
		if err != nil {
			switch {
			case errors.Is(err, evidenceService.ErrNoFile), errors.Is(err, evidenceService.ErrEmptyFile):
				return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada file yang dipilih")
			case errors.Is(err, evidenceService.ErrDisallowedType):
				return helper.JsonError(c, fiber.StatusBadRequest, "Tipe file tidak diizinkan")
			default:
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan file")
			}
		}
		row.EvidenceFilePath = &stored
		evidenceService.GenerateImagePreview(filepath.Join(configs.UploadDir, stored), mime)

	case evidenceModel.TypeDrive:
		if req.DriveLink == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Link drive wajib diisi")
		}
		row.EvidenceDriveLink = req.DriveLink
	}

	if err := h.DB.Create(&row).Error; err != nil {
		// file yang terlanjur tersimpan tidak boleh jadi yatim tanpa row
		if row.EvidenceFilePath != nil {
			evidenceService.RemoveEvidenceFile(*row.EvidenceFilePath)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan bukti")
	}

	activityService.Record(h.DB, c, &actor.ID, activityModel.ActivityEvidenceUploaded,
		"Upload bukti: "+row.EvidenceTitle+" untuk "+parentName,
		map[string]any{
			"evidence_id":      row.EvidenceID,
			"parameter_id":     parameterID,
			"sub_parameter_id": subParameterID,
			"type":             row.Type(),
		})

	return helper.JsonCreated(c, "Bukti berhasil diunggah",
		evidenceDTO.FromEvidenceModel(row, true, true))
}

// GET /api/evidence?parameter_id=|sub_parameter_id=
// Tanpa node → indeks pemilihan parameter/sub-parameter + jumlah bukti.
func (h *EvidenceController) List(c *fiber.Ctx) error {
	pidStr := strings.TrimSpace(c.Query("parameter_id"))
	sidStr := strings.TrimSpace(c.Query("sub_parameter_id"))

	if pidStr == "" && sidStr == "" {
		return h.selectionIndex(c)
	}

	q := h.DB.Model(&evidenceModel.EvidenceModel{}).Preload("Uploader")
	if sidStr != "" {
		id, err := uuid.Parse(sidStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "sub_parameter_id tidak valid")
		}
		q = q.Where("evidence_sub_parameter_id = ?", id)
	} else {
		id, err := uuid.Parse(pidStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "parameter_id tidak valid")
		}
		q = q.Where("evidence_parameter_id = ?", id)
	}

	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("evidence_status = ?", st)
	}

	paging := helper.ResolvePaging(c, 25, 200)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung bukti")
	}

	var rows []evidenceModel.EvidenceModel
	if err := q.Order("evidence_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bukti")
	}

	actor := actorFromCtx(c)
	out := make([]evidenceDTO.EvidenceResponse, 0, len(rows))
	for _, ev := range rows {
		out = append(out, evidenceDTO.FromEvidenceModel(ev,
			evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionEdit),
			evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDelete)))
	}

	return helper.JsonList(c, "Daftar bukti", out, helper.BuildPagination(paging, total))
}

// GET /api/evidence/:id
func (h *EvidenceController) Get(c *fiber.Ctx) error {
	ev, err := h.load(c)
	if err != nil {
		return loadError(c, err)
	}

	actor := actorFromCtx(c)
	if !evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionView) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak melihat bukti ini")
	}

	return helper.JsonOK(c, "Detail bukti", evidenceDTO.FromEvidenceModel(ev,
		evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionEdit),
		evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDelete)))
}

// PUT /api/evidence/:id — owner atau pemegang edit_evidence
func (h *EvidenceController) Update(c *fiber.Ctx) error {
	ev, err := h.load(c)
	if err != nil {
		return loadError(c, err)
	}

	actor := actorFromCtx(c)
	if !evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionEdit) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak mengubah bukti ini")
	}

	var req evidenceDTO.UpdateEvidenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Judul bukti wajib diisi")
		}
		updates["evidence_title"] = t
	}
	if req.Description != nil {
		updates["evidence_description"] = strings.TrimSpace(*req.Description)
	}
	if req.DriveLink != nil {
		if ev.Type() != evidenceModel.TypeDrive {
			return helper.JsonError(c, fiber.StatusBadRequest, "Bukti file tidak memiliki link drive")
		}
		l := strings.TrimSpace(*req.DriveLink)
		if l == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Link drive wajib diisi")
		}
		updates["evidence_drive_link"] = l
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&ev).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update bukti")
		}
	}

	activityService.Record(h.DB, c, &actor.ID, activityModel.ActivityEvidenceUpdated,
		"Bukti diperbarui: "+ev.EvidenceTitle, map[string]any{"evidence_id": ev.EvidenceID})

	return helper.JsonUpdated(c, "Bukti berhasil diperbarui", evidenceDTO.FromEvidenceModel(ev, true,
		evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDelete)))
}

// DELETE /api/evidence/:id — owner atau pemegang delete_evidence
func (h *EvidenceController) Delete(c *fiber.Ctx) error {
	ev, err := h.load(c)
	if err != nil {
		return loadError(c, err)
	}

	actor := actorFromCtx(c)
	if !evidenceService.CanActOnEvidence(actor, ev, evidenceService.ActionDelete) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak menghapus bukti ini")
	}

	if err := h.DB.Delete(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus bukti")
	}

	// file fisik dihapus best-effort setelah row hilang
	if ev.EvidenceFilePath != nil {
		evidenceService.RemoveEvidenceFile(*ev.EvidenceFilePath)
	}

	activityService.Record(h.DB, c, &actor.ID, activityModel.ActivityEvidenceDeleted,
		"Bukti dihapus: "+ev.EvidenceTitle, map[string]any{"evidence_id": ev.EvidenceID})

	return helper.JsonDeleted(c, "Bukti berhasil dihapus", nil)
}

/* =========================================================
   INTERNAL
   ========================================================= */

var (
	errEvidenceBadID    = errors.New("ID tidak valid")
	errEvidenceNotFound = errors.New("Bukti tidak ditemukan")
)

// load mengembalikan sentinel error, bukan respon; caller menerjemahkannya
// lewat loadError supaya id yang salah tidak pernah lolos sebagai row kosong.
func (h *EvidenceController) load(c *fiber.Ctx) (evidenceModel.EvidenceModel, error) {
	var ev evidenceModel.EvidenceModel

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return ev, errEvidenceBadID
	}

	err = h.DB.Preload("Uploader").Preload("Parameter").Preload("SubParameter").
		First(&ev, "evidence_id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ev, errEvidenceNotFound
	case err != nil:
		return ev, err
	}
	return ev, nil
}

func loadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errEvidenceBadID):
		return helper.JsonError(c, fiber.StatusBadRequest, errEvidenceBadID.Error())
	case errors.Is(err, errEvidenceNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, errEvidenceNotFound.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bukti")
	}
}

// resolveParent memvalidasi node induk dan memastikan invariant:
// sub-parameter (bila ada) harus milik parameter yang sama dengan yang disimpan.
func (h *EvidenceController) resolveParent(paramID, subID *uuid.UUID) (uuid.UUID, *uuid.UUID, string, error) {
	if subID != nil {
		var sub accModel.SubParameterModel
		if err := h.DB.First(&sub, "sub_parameter_id = ?", *subID).Error; err != nil {
			return uuid.Nil, nil, "", errors.New("Sub parameter tidak ditemukan")
		}
		if paramID != nil && *paramID != sub.SubParameterParameterID {
			return uuid.Nil, nil, "", errors.New("Sub parameter bukan milik parameter tersebut")
		}
		return sub.SubParameterParameterID, subID, sub.SubParameterName, nil
	}

	if paramID == nil {
		return uuid.Nil, nil, "", errors.New("parameter_id atau sub_parameter_id wajib diisi")
	}

	var param accModel.ParameterModel
	if err := h.DB.First(&param, "parameter_id = ?", *paramID).Error; err != nil {
		return uuid.Nil, nil, "", errors.New("Parameter tidak ditemukan")
	}
	return param.ParameterID, nil, param.ParameterName, nil
}

// selectionIndex: daftar flat parameter + sub-parameter dengan jumlah bukti,
// dipakai klien untuk memilih node sebelum membuka daftar bukti.
func (h *EvidenceController) selectionIndex(c *fiber.Ctx) error {
	type paramRow struct {
		ParameterID   uuid.UUID `json:"parameter_id"`
		ParameterName string    `json:"parameter_name"`
		EvidenceCount int64     `json:"evidence_count"`
	}
	type subRow struct {
		SubParameterID   uuid.UUID `json:"sub_parameter_id"`
		ParameterID      uuid.UUID `json:"parameter_id"`
		SubParameterName string    `json:"sub_parameter_name"`
		EvidenceCount    int64     `json:"evidence_count"`
	}

	var params []paramRow
	if err := h.DB.Raw(`
		SELECT p.parameter_id, p.parameter_name, COUNT(e.evidence_id) AS evidence_count
		FROM parameters p
		LEFT JOIN evidence e ON e.evidence_parameter_id = p.parameter_id
		GROUP BY p.parameter_id, p.parameter_name
		ORDER BY p.parameter_name
	`).Scan(&params).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil indeks pemilihan")
	}

	var subs []subRow
	if err := h.DB.Raw(`
		SELECT s.sub_parameter_id, s.sub_parameter_parameter_id AS parameter_id,
		       s.sub_parameter_name, COUNT(e.evidence_id) AS evidence_count
		FROM sub_parameters s
		LEFT JOIN evidence e ON e.evidence_sub_parameter_id = s.sub_parameter_id
		GROUP BY s.sub_parameter_id, s.sub_parameter_parameter_id, s.sub_parameter_name
		ORDER BY s.sub_parameter_name
	`).Scan(&subs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil indeks pemilihan")
	}

	return helper.JsonOK(c, "Pilih parameter atau sub parameter", fiber.Map{
		"parameters":     params,
		"sub_parameters": subs,
	})
}
