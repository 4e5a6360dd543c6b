package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	activityController "akreditasiku_backend/internals/features/activity/controller"
	authMw "akreditasiku_backend/internals/middlewares/auth"
)

// Mount contoh: ActivityLogRoutes(app.Group("/api"), db)
func ActivityLogRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &activityController.ActivityLogController{DB: db}

	logs := r.Group("/activity-logs")
	logs.Get("/", authMw.RequirePermission(db, constants.PermViewActivityLog), ctl.List)
	logs.Post("/prune", authMw.RequirePermission(db, constants.PermManageSettings), ctl.Prune)
}
