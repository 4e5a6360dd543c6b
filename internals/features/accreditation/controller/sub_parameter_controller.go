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

type SubParameterController struct {
	DB *gorm.DB
}

// GET /api/sub-parameters?parameter_id=
func (h *SubParameterController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&accModel.SubParameterModel{}).Preload("Parameter")
	if pid := strings.TrimSpace(c.Query("parameter_id")); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "parameter_id tidak valid")
		}
		q = q.Where("sub_parameter_parameter_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung sub parameter")
	}

	var rows []accModel.SubParameterModel
	if err := q.Order("sub_parameter_name").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sub parameter")
	}

	return helper.JsonList(c, "Daftar sub parameter", rows, helper.BuildPagination(paging, total))
}

// GET /api/sub-parameters/:id
func (h *SubParameterController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.SubParameterModel
	if err := h.DB.Preload("Parameter.AreaLevel").First(&row, "sub_parameter_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Sub parameter tidak ditemukan")
	}
	return helper.JsonOK(c, "Detail sub parameter", row)
}

// POST /api/sub-parameters
func (h *SubParameterController) Create(c *fiber.Ctx) error {
	var req accDTO.CreateSubParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&accModel.ParameterModel{}).
		Where("parameter_id = ?", req.ParameterID).Count(&cnt).Error; err != nil || cnt == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter induk tidak ditemukan")
	}

	row := req.ToModel()
	if err := h.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sub parameter")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivitySubParamCreated,
		"Sub parameter baru: "+row.SubParameterName, map[string]any{"sub_parameter_id": row.SubParameterID})

	return helper.JsonCreated(c, "Sub parameter berhasil dibuat", row)
}

// PUT /api/sub-parameters/:id
func (h *SubParameterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.SubParameterModel
	if err := h.DB.First(&row, "sub_parameter_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Sub parameter tidak ditemukan")
	}

	var req accDTO.UpdateSubParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["sub_parameter_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["sub_parameter_description"] = strings.TrimSpace(*req.Description)
	}
	if req.Weight != nil {
		updates["sub_parameter_weight"] = *req.Weight
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&row).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update sub parameter")
		}
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivitySubParamUpdated,
		"Sub parameter diperbarui: "+row.SubParameterName, map[string]any{"sub_parameter_id": row.SubParameterID})

	return helper.JsonUpdated(c, "Sub parameter berhasil diperbarui", row)
}

// DELETE /api/sub-parameters/:id
func (h *SubParameterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row accModel.SubParameterModel
	if err := h.DB.First(&row, "sub_parameter_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sub parameter tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sub parameter")
	}

	if err := h.DB.Delete(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus sub parameter")
	}

	activityService.Record(h.DB, c, actorPtr(c), activityModel.ActivitySubParamDeleted,
		"Sub parameter dihapus: "+row.SubParameterName, map[string]any{"sub_parameter_id": row.SubParameterID})

	return helper.JsonDeleted(c, "Sub parameter berhasil dihapus", nil)
}
