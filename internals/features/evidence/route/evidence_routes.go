package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evidenceController "akreditasiku_backend/internals/features/evidence/controller"
)

// EvidenceRoutes: semua endpoint bukti butuh login; upload dijaga
// add_evidence, sisanya otorisasi per-baris (owner-or-permission) dicek
// di handler, bukan middleware, supaya kepemilikan bisa ikut dihitung
// dan percobaan tanpa izin tercatat.
func EvidenceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &evidenceController.EvidenceController{DB: db}
	review := &evidenceController.EvidenceReviewController{DB: db}
	download := &evidenceController.EvidenceDownloadController{DB: db}

	g := r.Group("/evidence")

	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Upload)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)

	g.Post("/:id/review", review.Review)
	g.Get("/:id/download", download.Download)
}
