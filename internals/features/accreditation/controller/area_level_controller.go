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

type AreaLevelController struct {
	DB *gorm.DB
}

// GET /api/area-levels?program_id=
func (h *AreaLevelController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&accModel.AreaLevelModel{}).Preload("Program")
	if pid := strings.TrimSpace(c.Query("program_id")); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "program_id tidak valid")
		}
		q = q.Where("area_level_program_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung area level")
	}

	var rows []accModel.AreaLevelModel
	if err := q.Order("area_level_name").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil area level")
	}

	return helper.JsonList(c, "Daftar area level", rows, helper.BuildPagination(paging, total))
}

// GET /api/area-levels/:id
func (h *AreaLevelController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.AreaLevelModel
	if err := h.DB.Preload("Program").First(&row, "area_level_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Area level tidak ditemukan")
	}

	var params []accModel.ParameterModel
	_ = h.DB.Where("parameter_area_level_id = ?", id).Order("parameter_name").Find(&params).Error

	return helper.JsonOK(c, "Detail area level", fiber.Map{
		"area_level": row,
		"parameters": params,
	})
}

// POST /api/area-levels
func (h *AreaLevelController) Create(c *fiber.Ctx) error {
	var req accDTO.CreateAreaLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// parent harus ada
	var cnt int64
	if err := h.DB.Model(&accModel.ProgramModel{}).
		Where("program_id = ?", req.ProgramID).Count(&cnt).Error; err != nil || cnt == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Program induk tidak ditemukan")
	}

	row := req.ToModel()
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat area level")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityAreaCreated,
		"Area level baru: "+row.AreaLevelName, map[string]any{"area_level_id": row.AreaLevelID})

	return helper.JsonCreated(c, "Area level berhasil dibuat", row)
}

// PUT /api/area-levels/:id
func (h *AreaLevelController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.AreaLevelModel
	if err := h.DB.First(&row, "area_level_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Area level tidak ditemukan")
	}

	var req accDTO.UpdateAreaLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["area_level_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["area_level_description"] = strings.TrimSpace(*req.Description)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&row).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update area level")
		}
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityAreaUpdated,
		"Area level diperbarui: "+row.AreaLevelName, map[string]any{"area_level_id": row.AreaLevelID})

	return helper.JsonUpdated(c, "Area level berhasil diperbarui", row)
}

// DELETE /api/area-levels/:id
func (h *AreaLevelController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.AreaLevelModel
	if err := h.DB.First(&row, "area_level_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Area level tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil area level")
	}

	if err := h.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus area level")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityAreaDeleted,
		"Area level dihapus: "+row.AreaLevelName, map[string]any{"area_level_id": row.AreaLevelID})

	return helper.JsonDeleted(c, "Area level berhasil dihapus", nil)
}
