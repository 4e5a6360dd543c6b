package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	settingService "akreditasiku_backend/internals/features/settings/service"
	helper "akreditasiku_backend/internals/helpers"
)

type BackupController struct {
	DB *gorm.DB
}

func (h *BackupController) actor(c *fiber.Ctx) *uuid.UUID {
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		return &id
	}
	return nil
}

// GET /api/backups
func (h *BackupController) List(c *fiber.Ctx) error {
	backups, err := settingService.ListBackups()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca direktori backup")
	}
	return helper.JsonOK(c, "Daftar backup", backups)
}

// POST /api/backups — jalankan pg_dump
func (h *BackupController) Create(c *fiber.Ctx) error {
	name, err := settingService.CreateBackup()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat backup database")
	}

	activityService.Record(h.DB, c, h.actor(c), activityModel.ActivityBackupCreated,
		"Backup database dibuat: "+name, map[string]any{"file": name})

	return helper.JsonCreated(c, "Backup berhasil dibuat", fiber.Map{"file": name})
}

// GET /api/backups/:name/download
func (h *BackupController) Download(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	path, err := settingService.ResolveBackupPath(name)
	if err != nil {
		return backupError(c, err)
	}
	return c.Download(path, name)
}

// DELETE /api/backups/:name
func (h *BackupController) Delete(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if err := settingService.DeleteBackup(name); err != nil {
		return backupError(c, err)
	}

	activityService.Record(h.DB, c, h.actor(c), activityModel.ActivityBackupDeleted,
		"Backup database dihapus: "+name, map[string]any{"file": name})

	return helper.JsonDeleted(c, "Backup berhasil dihapus", nil)
}

// POST /api/backups/restore-upload — simpan kandidat restore, tidak dieksekusi
func (h *BackupController) RestoreUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("backup_file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada file yang dipilih")
	}

	name, err := settingService.SaveRestoreUpload(fh)
	if err != nil {
		if errors.Is(err, settingService.ErrNotSQLFile) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Hanya file .sql yang diterima")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan file restore")
	}

	return helper.JsonCreated(c, "File restore tersimpan, eksekusi dilakukan manual oleh DBA",
		fiber.Map{"file": name})
}

// GET /api/backups/stats — jumlah baris per tabel
func (h *BackupController) Stats(c *fiber.Ctx) error {
	stats, err := settingService.TableStats(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik tabel")
	}
	return helper.JsonOK(c, "Statistik tabel", stats)
}

func backupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, settingService.ErrInvalidBackupName):
		return helper.JsonError(c, fiber.StatusBadRequest, "Nama file backup tidak valid")
	case errors.Is(err, settingService.ErrBackupNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "File backup tidak ditemukan")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Operasi backup gagal")
	}
}
