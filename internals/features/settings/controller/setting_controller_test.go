package controller

import (
	"bytes"
	"encoding/json"
	"io"
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

	settingModel "akreditasiku_backend/internals/features/settings/model"
	helper "akreditasiku_backend/internals/helpers"
)

const settingsTestSchema = `
CREATE TABLE settings (
	setting_key TEXT PRIMARY KEY,
	setting_value TEXT NOT NULL DEFAULT '',
	setting_updated_at DATETIME
);
CREATE TABLE activity_logs (
	activity_log_id INTEGER PRIMARY KEY AUTOINCREMENT,
	activity_log_user_id TEXT,
	activity_log_type TEXT NOT NULL,
	activity_log_description TEXT NOT NULL,
	activity_log_metadata TEXT,
	activity_log_ip_address TEXT,
	activity_log_user_agent TEXT,
	activity_log_created_at DATETIME
);
`

func settingsTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range strings.Split(settingsTestSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, uuid.NewString())
		return c.Next()
	})
	ctl := &SettingController{DB: db}
	app.Get("/api/settings", ctl.List)
	app.Get("/api/settings/:key", ctl.Get)
	app.Put("/api/settings", ctl.Upsert)
	return app, db
}

func putSetting(t *testing.T, app *fiber.App, key, value string) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"setting_key": key, "setting_value": value})
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSettingUpsert(t *testing.T) {
	app, db := settingsTestApp(t)

	resp := putSetting(t, app, settingModel.KeyInstitutionName, "Universitas A")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// upsert kedua menimpa, bukan menduplikasi
	resp = putSetting(t, app, settingModel.KeyInstitutionName, "Universitas B")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []settingModel.SettingModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Universitas B", rows[0].SettingValue)
}

func TestSettingUpsertRejectsEmptyKey(t *testing.T) {
	app, _ := settingsTestApp(t)
	resp := putSetting(t, app, "   ", "x")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettingGetWithDefault(t *testing.T) {
	app, db := settingsTestApp(t)

	t.Run("key belum ada memakai default query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings/"+settingModel.KeyMaxUploadMB+"?default=25", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		data := out["data"].(map[string]any)
		assert.Equal(t, "25", data["setting_value"])
	})

	t.Run("key tersimpan mengalahkan default", func(t *testing.T) {
		require.NoError(t, db.Create(&settingModel.SettingModel{
			SettingKey: settingModel.KeyContactEmail, SettingValue: "humas@kampus.ac.id",
		}).Error)

		req := httptest.NewRequest(http.MethodGet, "/api/settings/"+settingModel.KeyContactEmail+"?default=x", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		data := out["data"].(map[string]any)
		assert.Equal(t, "humas@kampus.ac.id", data["setting_value"])
	})
}
