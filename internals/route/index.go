package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accreditationRoute "akreditasiku_backend/internals/features/accreditation/route"
	activityRoute "akreditasiku_backend/internals/features/activity/route"
	evidenceRoute "akreditasiku_backend/internals/features/evidence/route"
	settingsRoute "akreditasiku_backend/internals/features/settings/route"
	userRoute "akreditasiku_backend/internals/features/users/route"
	"akreditasiku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (login dsb.)
	public := app.Group("/api")

	// PRIVATE → wajib JWT valid + user aktif
	private := app.Group("/api", auth.AuthMiddleware(db))

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Auth routes...")
	userRoute.AuthRoutes(public, private, db)

	log.Println("[INFO] Mounting User admin routes...")
	userRoute.UserAdminRoutes(private, db)

	log.Println("[INFO] Mounting Accreditation routes...")
	accreditationRoute.AccreditationRoutes(private, db)

	log.Println("[INFO] Mounting Evidence routes...")
	evidenceRoute.EvidenceRoutes(private, db)

	log.Println("[INFO] Mounting Activity log routes...")
	activityRoute.ActivityLogRoutes(private, db)

	log.Println("[INFO] Mounting Settings & Backup routes...")
	settingsRoute.SettingsRoutes(private, db)
}
