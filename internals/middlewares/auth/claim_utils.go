package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "akreditasiku_backend/internals/features/users/model"
	helper "akreditasiku_backend/internals/helpers"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// 1) Cookie
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	// 2) Authorization: Bearer <token>
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(prefix) && strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):]), nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("klaim exp tidak ada")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("klaim exp tidak valid")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token kadaluarsa")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims["user_id"].(string)
	}
	return uuid.Parse(sub)
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var u userModel.UserModel
	if err := db.Select("id", "is_active").First(&u, "id = ?", userID).Error; err != nil {
		return err
	}
	if !u.IsActive {
		return errors.New("user nonaktif")
	}
	return nil
}

// storeBasicClaimsToLocals menyalin nama, role, dan permission set dari klaim.
func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if name, ok := claims["full_name"].(string); ok {
		c.Locals(helper.LocUserName, name)
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals(helper.LocRole, role)
	}
	if rawPerms, ok := claims["permissions"].([]interface{}); ok {
		perms := make([]string, 0, len(rawPerms))
		for _, p := range rawPerms {
			if s, ok := p.(string); ok {
				perms = append(perms, s)
			}
		}
		c.Locals(helper.LocPermissions, perms)
	}
}
