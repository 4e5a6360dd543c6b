package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	accController "akreditasiku_backend/internals/features/accreditation/controller"
	authMw "akreditasiku_backend/internals/middlewares/auth"
)

// CRUD hirarki akreditasi. Read terbuka untuk semua user login;
// mutasi di balik permission add/edit/delete masing-masing entitas.
// Mount contoh: AccreditationRoutes(app.Group("/api"), db)
func AccreditationRoutes(r fiber.Router, db *gorm.DB) {
	programCtl := &accController.ProgramController{DB: db}
	programs := r.Group("/programs")
	programs.Get("/", programCtl.List)
	programs.Get("/:id", programCtl.Get)
	programs.Post("/", authMw.RequirePermission(db, constants.PermAddProgram), programCtl.Create)
	programs.Put("/:id", authMw.RequirePermission(db, constants.PermEditProgram), programCtl.Update)
	programs.Delete("/:id", authMw.RequirePermission(db, constants.PermDeleteProgram), programCtl.Delete)

	areaCtl := &accController.AreaLevelController{DB: db}
	areas := r.Group("/area-levels")
	areas.Get("/", areaCtl.List)
	areas.Get("/:id", areaCtl.Get)
	areas.Post("/", authMw.RequirePermission(db, constants.PermAddAreaLevel), areaCtl.Create)
	areas.Put("/:id", authMw.RequirePermission(db, constants.PermEditAreaLevel), areaCtl.Update)
	areas.Delete("/:id", authMw.RequirePermission(db, constants.PermDeleteAreaLevel), areaCtl.Delete)

	paramCtl := &accController.ParameterController{DB: db}
	params := r.Group("/parameters")
	params.Get("/", paramCtl.List)
	params.Get("/:id", paramCtl.Get)
	params.Post("/", authMw.RequirePermission(db, constants.PermAddParameter), paramCtl.Create)
	params.Put("/:id", authMw.RequirePermission(db, constants.PermEditParameter), paramCtl.Update)
	params.Delete("/:id", authMw.RequirePermission(db, constants.PermDeleteParameter), paramCtl.Delete)

	subCtl := &accController.SubParameterController{DB: db}
	subs := r.Group("/sub-parameters")
	subs.Get("/", subCtl.List)
	subs.Get("/:id", subCtl.Get)
	subs.Post("/", authMw.RequirePermission(db, constants.PermAddSubParameter), subCtl.Create)
	subs.Put("/:id", authMw.RequirePermission(db, constants.PermEditSubParameter), subCtl.Update)
	subs.Delete("/:id", authMw.RequirePermission(db, constants.PermDeleteSubParameter), subCtl.Delete)

	treeCtl := &accController.TreeController{DB: db}
	r.Get("/accreditation/tree", treeCtl.SelectionIndex)
}
