package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	accDTO "akreditasiku_backend/internals/features/accreditation/dto"
	accModel "akreditasiku_backend/internals/features/accreditation/model"
	helper "akreditasiku_backend/internals/helpers"
)

type ProgramController struct {
	DB *gorm.DB
}

// GET /api/programs
func (h *ProgramController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&accModel.ProgramModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("lower(program_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung program")
	}

	var rows []accModel.ProgramModel
	if err := q.Order("program_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil program")
	}

	return helper.JsonList(c, "Daftar program", rows, helper.BuildPagination(paging, total))
}

// GET /api/programs/:id
func (h *ProgramController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ProgramModel
	if err := h.DB.First(&row, "program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
	}

	var areas []accModel.AreaLevelModel
	_ = h.DB.Where("area_level_program_id = ?", id).Order("area_level_name").Find(&areas).Error

	return helper.JsonOK(c, "Detail program", fiber.Map{
		"program":     row,
		"area_levels": areas,
	})
}

// POST /api/programs
func (h *ProgramController) Create(c *fiber.Ctx) error {
	var req accDTO.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := req.ToModel()
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat program")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityProgramCreated,
		"Program baru: "+row.ProgramName, map[string]any{"program_id": row.ProgramID})

	return helper.JsonCreated(c, "Program berhasil dibuat", row)
}

// PUT /api/programs/:id
func (h *ProgramController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ProgramModel
	if err := h.DB.First(&row, "program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
	}

	var req accDTO.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["program_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["program_description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&row).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update program")
		}
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityProgramUpdated,
		"Program diperbarui: "+row.ProgramName, map[string]any{"program_id": row.ProgramID})

	return helper.JsonUpdated(c, "Program berhasil diperbarui", row)
}

// DELETE /api/programs/:id — cascade ke area/parameter/sub-parameter/evidence (FK)
func (h *ProgramController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ProgramModel
	if err := h.DB.First(&row, "program_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil program")
	}

	if err := h.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus program")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityProgramDeleted,
		"Program dihapus: "+row.ProgramName, map[string]any{"program_id": row.ProgramID})

	return helper.JsonDeleted(c, "Program berhasil dihapus", nil)
}

func actorPtr(c *fiber.Ctx) *uuid.UUID {
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		return &id
	}
	return nil
}
