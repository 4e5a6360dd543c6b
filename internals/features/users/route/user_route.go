package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	userController "akreditasiku_backend/internals/features/users/controller"
	middlewares "akreditasiku_backend/internals/middlewares"
	authMw "akreditasiku_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik login + endpoint sesi (butuh token).
func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB) {
	ctl := &userController.AuthController{DB: db}

	// limiter khusus: brute force login jauh lebih ketat dari limit global
	public.Post("/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
	public.Post("/auth/refresh", ctl.Refresh)

	private.Post("/auth/logout", ctl.Logout)
	private.Get("/auth/me", ctl.Me)
}

// UserAdminRoutes: manajemen user/role di balik manage_users.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}

	users := r.Group("/users", authMw.RequirePermission(db, constants.PermManageUsers))
	users.Get("/", ctl.List)
	users.Post("/", ctl.Create)
	users.Get("/:id", ctl.Get)
	users.Put("/:id", ctl.Update)
	users.Delete("/:id", ctl.Delete)

	r.Get("/roles", authMw.RequirePermission(db, constants.PermManageUsers), ctl.ListRoles)
	r.Get("/permissions", authMw.RequirePermission(db, constants.PermManageUsers), ctl.ListPermissions)
}
