package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	settingController "akreditasiku_backend/internals/features/settings/controller"
	"akreditasiku_backend/internals/middlewares/auth"
)

func SettingsRoutes(r fiber.Router, db *gorm.DB) {
	settings := &settingController.SettingController{DB: db}
	backups := &settingController.BackupController{DB: db}

	s := r.Group("/settings", auth.RequirePermission(db, constants.PermManageSettings))
	s.Get("/", settings.List)
	s.Get("/:key", settings.Get)
	s.Put("/", settings.Upsert)

	b := r.Group("/backups", auth.RequirePermission(db, constants.PermManageBackup))
	b.Get("/", backups.List)
	b.Post("/", backups.Create)
	b.Get("/stats", backups.Stats)
	b.Post("/restore-upload", backups.RestoreUpload)
	b.Get("/:name/download", backups.Download)
	b.Delete("/:name", backups.Delete)
}
