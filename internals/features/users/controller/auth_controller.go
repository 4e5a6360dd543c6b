package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/configs"
	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	userDTO "akreditasiku_backend/internals/features/users/dto"
	userModel "akreditasiku_backend/internals/features/users/model"
	helper "akreditasiku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req userDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)

	var user userModel.UserModel
	err := h.DB.Preload("Role.Permissions").
		Where("username = ?", req.Username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// percobaan login gagal tetap dicatat
			activityService.Record(h.DB, c, nil, activityModel.ActivityLoginFailed,
				"Login gagal: user tidak dikenal", map[string]any{"username": req.Username})
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	if !user.IsActive {
		activityService.Record(h.DB, c, &user.ID, activityModel.ActivityLoginFailed,
			"Login gagal: akun nonaktif", map[string]any{"username": req.Username})
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		activityService.Record(h.DB, c, &user.ID, activityModel.ActivityLoginFailed,
			"Login gagal: password salah", map[string]any{"username": req.Username})
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	token, err := signAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := signRefreshToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	activityService.Record(h.DB, c, &user.ID, activityModel.ActivityLogin,
		"Login berhasil", map[string]any{"username": user.Username})

	return helper.JsonOK(c, "Login berhasil", userDTO.LoginResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		User:         userDTO.FromUserModel(user),
	})
}

// POST /api/auth/refresh — tukar refresh token dengan access token baru.
// Kondisi akun dicek ulang: user yang dinonaktifkan setelah login
// tidak bisa memperpanjang sesi lewat refresh.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req userDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	token, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing tidak dikenal")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	var user userModel.UserModel
	if err := h.DB.Preload("Role.Permissions").First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	access, err := signAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Token diperbarui", userDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: req.RefreshToken,
		User:         userDTO.FromUserModel(user),
	})
}

// POST /api/auth/logout — token berjalan masuk blacklist
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helper.LocRawToken).(string)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	entry := userModel.TokenBlacklist{
		Token:     raw,
		ExpiredAt: time.Now().Add(accessTokenTTL()),
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		// token sudah pernah di-blacklist → tetap anggap logout sukses
		if !strings.Contains(strings.ToLower(err.Error()), "unique") &&
			!strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
		}
	}

	var actor *uuid.UUID
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		actor = &id
	}
	activityService.Record(h.DB, c, actor, activityModel.ActivityLogout, "Logout", nil)

	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user userModel.UserModel
	if err := h.DB.Preload("Role.Permissions").First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "Profil", userDTO.FromUserModel(user))
}

func accessTokenTTL() time.Duration {
	hours := configs.GetEnvInt("JWT_TTL_HOURS", 24)
	return time.Duration(hours) * time.Hour
}

func refreshTokenTTL() time.Duration {
	hours := configs.GetEnvInt("JWT_REFRESH_TTL_HOURS", 24*7)
	return time.Duration(hours) * time.Hour
}

func signRefreshToken(user userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID.String(),
		"token_type": "refresh",
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(refreshTokenTTL()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
}

func signAccessToken(user userModel.UserModel) (string, error) {
	perms := []string{}
	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
		for _, p := range user.Role.Permissions {
			perms = append(perms, p.Name)
		}
	}

	claims := jwt.MapClaims{
		"sub":         user.ID.String(),
		"full_name":   user.FullName,
		"role":        roleName,
		"permissions": perms,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(accessTokenTTL()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}
