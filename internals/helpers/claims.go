package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi auth middleware. HARUS seragam di seluruh kodebase.
const (
	LocUserID      = "user_id"
	LocUserName    = "user_name"
	LocRole        = "role"
	LocPermissions = "permissions"
	LocRawToken    = "raw_token"
)

var ErrNoUserInContext = errors.New("user tidak ditemukan di context")

// GetUserIDFromLocals mengembalikan id user yang sudah terverifikasi middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserInContext
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInContext
	}
	return id, nil
}

func GetUserNameFromLocals(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok {
		return v
	}
	return ""
}

func GetRoleFromLocals(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return v
	}
	return ""
}

// GetPermissionsFromLocals mengembalikan capability set caller.
// Tidak ada klaim → slice kosong (deny by default di guard).
func GetPermissionsFromLocals(c *fiber.Ctx) []string {
	if v, ok := c.Locals(LocPermissions).([]string); ok {
		return v
	}
	return nil
}

func HasPermission(c *fiber.Ctx, perm string) bool {
	for _, p := range GetPermissionsFromLocals(c) {
		if p == perm {
			return true
		}
	}
	return false
}
