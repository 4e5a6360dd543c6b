package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	userDTO "akreditasiku_backend/internals/features/users/dto"
	userModel "akreditasiku_backend/internals/features/users/model"
	helper "akreditasiku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

// GET /api/users
func (h *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&userModel.UserModel{}).Preload("Role")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("lower(username) LIKE ? OR lower(full_name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	out := make([]userDTO.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO.FromUserModel(u))
	}
	return helper.JsonList(c, "Daftar user", out, helper.BuildPagination(paging, total))
}

// POST /api/users
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	role, err := h.findRole(req.RoleName)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}

	user := userModel.UserModel{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		RoleID:       &role.ID,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Username atau email sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	user.Role = &role

	actor := h.actor(c)
	activityService.Record(h.DB, c, actor, activityModel.ActivityUserCreated,
		"User baru dibuat: "+user.Username, map[string]any{"user_id": user.ID, "role": role.Name})

	return helper.JsonCreated(c, "User berhasil dibuat", userDTO.FromUserModel(user))
}

// GET /api/users/:id
func (h *UserController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user userModel.UserModel
	if err := h.DB.Preload("Role.Permissions").First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "Detail user", userDTO.FromUserModel(user))
}

// PUT /api/users/:id
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
		}
		updates["password_hash"] = string(hash)
	}
	if req.RoleName != nil {
		role, err := h.findRole(*req.RoleName)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Role tidak dikenal")
		}
		updates["role_id"] = role.ID
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update user")
		}
	}

	if err := h.DB.Preload("Role.Permissions").First(&user, "id = ?", id).Error; err == nil {
		activityService.Record(h.DB, c, h.actor(c), activityModel.ActivityUserUpdated,
			"User diperbarui: "+user.Username, map[string]any{"user_id": user.ID})
	}

	return helper.JsonUpdated(c, "User berhasil diperbarui", userDTO.FromUserModel(user))
}

// DELETE /api/users/:id (soft delete)
func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}

	activityService.Record(h.DB, c, h.actor(c), activityModel.ActivityUserDeleted,
		"User dihapus: "+user.Username, map[string]any{"user_id": user.ID})

	return helper.JsonDeleted(c, "User berhasil dihapus", nil)
}

// GET /api/roles
func (h *UserController) ListRoles(c *fiber.Ctx) error {
	var roles []userModel.RoleModel
	if err := h.DB.Preload("Permissions").Order("name").Find(&roles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil role")
	}
	return helper.JsonOK(c, "Daftar role", roles)
}

// GET /api/permissions
func (h *UserController) ListPermissions(c *fiber.Ctx) error {
	var perms []userModel.PermissionModel
	if err := h.DB.Order("name").Find(&perms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil permission")
	}
	return helper.JsonOK(c, "Daftar permission", perms)
}

func (h *UserController) findRole(name string) (userModel.RoleModel, error) {
	var role userModel.RoleModel
	err := h.DB.Where("name = ?", strings.TrimSpace(name)).First(&role).Error
	return role, err
}

func (h *UserController) actor(c *fiber.Ctx) *uuid.UUID {
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		return &id
	}
	return nil
}
