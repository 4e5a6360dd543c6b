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

type ParameterController struct {
	DB *gorm.DB
}

// GET /api/parameters?area_level_id=
func (h *ParameterController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&accModel.ParameterModel{}).Preload("AreaLevel")
	if aid := strings.TrimSpace(c.Query("area_level_id")); aid != "" {
		id, err := uuid.Parse(aid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "area_level_id tidak valid")
		}
		q = q.Where("parameter_area_level_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung parameter")
	}

	var rows []accModel.ParameterModel
	if err := q.Order("parameter_name").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil parameter")
	}

	return helper.JsonList(c, "Daftar parameter", rows, helper.BuildPagination(paging, total))
}

// GET /api/parameters/:id
func (h *ParameterController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ParameterModel
	if err := h.DB.Preload("AreaLevel.Program").First(&row, "parameter_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Parameter tidak ditemukan")
	}

	var subs []accModel.SubParameterModel
	_ = h.DB.Where("sub_parameter_parameter_id = ?", id).Order("sub_parameter_name").Find(&subs).Error

	return helper.JsonOK(c, "Detail parameter", fiber.Map{
		"parameter":      row,
		"sub_parameters": subs,
	})
}

// POST /api/parameters
func (h *ParameterController) Create(c *fiber.Ctx) error {
	var req accDTO.CreateParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&accModel.AreaLevelModel{}).
		Where("area_level_id = ?", req.AreaLevelID).Count(&cnt).Error; err != nil || cnt == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Area level induk tidak ditemukan")
	}

	row := req.ToModel()
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat parameter")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityParamCreated,
		"Parameter baru: "+row.ParameterName, map[string]any{"parameter_id": row.ParameterID})

	return helper.JsonCreated(c, "Parameter berhasil dibuat", row)
}

// PUT /api/parameters/:id
func (h *ParameterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ParameterModel
	if err := h.DB.First(&row, "parameter_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Parameter tidak ditemukan")
	}

	var req accDTO.UpdateParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["parameter_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["parameter_description"] = strings.TrimSpace(*req.Description)
	}
	if req.Weight != nil {
		updates["parameter_weight"] = *req.Weight
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&row).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update parameter")
		}
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityParamUpdated,
		"Parameter diperbarui: "+row.ParameterName, map[string]any{"parameter_id": row.ParameterID})

	return helper.JsonUpdated(c, "Parameter berhasil diperbarui", row)
}

// DELETE /api/parameters/:id
func (h *ParameterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.ParameterModel
	if err := h.DB.First(&row, "parameter_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parameter tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil parameter")
	}

	if err := h.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus parameter")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivityParamDeleted,
		"Parameter dihapus: "+row.ParameterName, map[string]any{"parameter_id": row.ParameterID})

	return helper.JsonDeleted(c, "Parameter berhasil dihapus", nil)
}
