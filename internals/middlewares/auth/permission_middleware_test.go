package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"akreditasiku_backend/internals/constants"
	helper "akreditasiku_backend/internals/helpers"
)

const permTestSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	role_id TEXT,
	is_active INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE permissions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE role_permissions (
	role_id TEXT NOT NULL,
	permission_id TEXT NOT NULL
);
`

func permTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range strings.Split(permTestSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func permTestApp(db *gorm.DB, guardPerm string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals(helper.LocUserID, id)
		}
		if perms := c.Get("X-Test-Perms"); perms != "" {
			c.Locals(helper.LocPermissions, strings.Split(perms, ","))
		}
		return c.Next()
	})
	app.Get("/guarded", RequirePermission(db, guardPerm), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequirePermission(t *testing.T) {
	t.Run("klaim memuat permission: lolos", func(t *testing.T) {
		app := permTestApp(permTestDB(t), constants.PermManageSettings)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Test-User", uuid.NewString())
		req.Header.Set("X-Test-Perms", constants.PermManageSettings)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("klaim tanpa permission yang diminta: 403", func(t *testing.T) {
		app := permTestApp(permTestDB(t), constants.PermManageSettings)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Test-User", uuid.NewString())
		req.Header.Set("X-Test-Perms", constants.PermViewEvidence)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("tanpa klaim: fallback DB, user tak dikenal ditolak", func(t *testing.T) {
		app := permTestApp(permTestDB(t), constants.PermManageSettings)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Test-User", uuid.NewString())

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("tanpa klaim: fallback DB menemukan permission role", func(t *testing.T) {
		db := permTestDB(t)
		userID := uuid.NewString()
		roleID := uuid.NewString()
		permID := uuid.NewString()
		require.NoError(t, db.Exec("INSERT INTO users (id, role_id, is_active) VALUES (?, ?, 1)", userID, roleID).Error)
		require.NoError(t, db.Exec("INSERT INTO permissions (id, name) VALUES (?, ?)", permID, constants.PermManageSettings).Error)
		require.NoError(t, db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, permID).Error)

		app := permTestApp(db, constants.PermManageSettings)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Test-User", userID)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("user non-aktif tidak dapat permission dari DB", func(t *testing.T) {
		db := permTestDB(t)
		userID := uuid.NewString()
		roleID := uuid.NewString()
		permID := uuid.NewString()
		require.NoError(t, db.Exec("INSERT INTO users (id, role_id, is_active) VALUES (?, ?, 0)", userID, roleID).Error)
		require.NoError(t, db.Exec("INSERT INTO permissions (id, name) VALUES (?, ?)", permID, constants.PermManageSettings).Error)
		require.NoError(t, db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, permID).Error)

		app := permTestApp(db, constants.PermManageSettings)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("X-Test-User", userID)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonim ditolak", func(t *testing.T) {
		app := permTestApp(permTestDB(t), constants.PermManageSettings)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
