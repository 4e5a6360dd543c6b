package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	settingModel "akreditasiku_backend/internals/features/settings/model"
	helper "akreditasiku_backend/internals/helpers"
)

type SettingController struct {
	DB *gorm.DB
}

type upsertSettingRequest struct {
	Key   string `json:"setting_key" form:"setting_key" validate:"required,min=1,max=100"`
	Value string `json:"setting_value" form:"setting_value"`
}

// GET /api/settings
func (h *SettingController) List(c *fiber.Ctx) error {
	var rows []settingModel.SettingModel
	if err := h.DB.Order("setting_key").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.JsonOK(c, "Daftar pengaturan", rows)
}

// GET /api/settings/:key — ?default= dipakai bila key belum ada
func (h *SettingController) Get(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Key pengaturan wajib diisi")
	}

	var row settingModel.SettingModel
	err := h.DB.First(&row, "setting_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonOK(c, "Pengaturan (default)", settingModel.SettingModel{
			SettingKey:   key,
			SettingValue: c.Query("default", ""),
		})
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengaturan")
	}
	return helper.JsonOK(c, "Pengaturan", row)
}

// PUT /api/settings — upsert per key
func (h *SettingController) Upsert(c *fiber.Ctx) error {
	var req upsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Key = strings.TrimSpace(req.Key)
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := settingModel.SettingModel{
		SettingKey:   req.Key,
		SettingValue: req.Value,
	}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengaturan")
	}

	var actor *uuid.UUID
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		actor = &id
	}
	activityService.Record(h.DB, c, actor, activityModel.ActivitySettingUpdated,
		"Pengaturan diubah: "+req.Key, map[string]any{"setting_key": req.Key})

	return helper.JsonUpdated(c, "Pengaturan berhasil disimpan", row)
}
