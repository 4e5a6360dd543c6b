package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/constants"
	helper "akreditasiku_backend/internals/helpers"
)

// RequirePermission adalah guard deklaratif per-route: lolos bila caller
// memegang SALAH SATU permission yang disebut. Set permission diambil dari
// klaim JWT (diisi saat login); bila klaim tidak ada, di-reload sekali dari DB.
// Kegagalan resolusi apa pun = tolak (deny by default).
func RequirePermission(db *gorm.DB, perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have := helper.GetPermissionsFromLocals(c)
		if have == nil {
			loaded, err := loadPermissionsFromDB(db, c)
			if err != nil {
				return helper.JsonError(c, fiber.StatusForbidden, constants.PermissionError(perms[0]))
			}
			c.Locals(helper.LocPermissions, loaded)
			have = loaded
		}

		for _, want := range perms {
			for _, p := range have {
				if p == want {
					return c.Next()
				}
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, constants.PermissionError(perms[0]))
	}
}

func loadPermissionsFromDB(db *gorm.DB, c *fiber.Ctx) ([]string, error) {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil, err
	}

	var names []string
	err = db.Raw(`
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN users u ON u.role_id = rp.role_id
		WHERE u.id = ? AND u.is_active = ?
	`, userID, true).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
