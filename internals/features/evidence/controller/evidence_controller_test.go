package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"akreditasiku_backend/internals/configs"
	"akreditasiku_backend/internals/constants"
	accModel "akreditasiku_backend/internals/features/accreditation/model"
	activityModel "akreditasiku_backend/internals/features/activity/model"
	evidenceModel "akreditasiku_backend/internals/features/evidence/model"
	evidenceRoute "akreditasiku_backend/internals/features/evidence/route"
	userModel "akreditasiku_backend/internals/features/users/model"
	helper "akreditasiku_backend/internals/helpers"
)

/* =========================================================
   TEST HARNESS
   ========================================================= */

// Skema test ditulis tangan: default gen_random_uuid()/now() di tag model
// hanya berlaku di Postgres, sqlite cukup kolom polos + hook BeforeCreate.
const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	role_id TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
);
CREATE TABLE programs (
	program_id TEXT PRIMARY KEY,
	program_name TEXT NOT NULL,
	program_description TEXT,
	program_created_at DATETIME,
	program_updated_at DATETIME
);
CREATE TABLE area_levels (
	area_level_id TEXT PRIMARY KEY,
	area_level_program_id TEXT NOT NULL,
	area_level_name TEXT NOT NULL,
	area_level_description TEXT,
	area_level_created_at DATETIME,
	area_level_updated_at DATETIME
);
CREATE TABLE parameters (
	parameter_id TEXT PRIMARY KEY,
	parameter_area_level_id TEXT NOT NULL,
	parameter_name TEXT NOT NULL,
	parameter_description TEXT,
	parameter_weight REAL NOT NULL DEFAULT 0,
	parameter_created_at DATETIME,
	parameter_updated_at DATETIME
);
CREATE TABLE sub_parameters (
	sub_parameter_id TEXT PRIMARY KEY,
	sub_parameter_parameter_id TEXT NOT NULL,
	sub_parameter_name TEXT NOT NULL,
	sub_parameter_description TEXT,
	sub_parameter_weight REAL NOT NULL DEFAULT 0,
	sub_parameter_created_at DATETIME,
	sub_parameter_updated_at DATETIME
);
CREATE TABLE evidence (
	evidence_id TEXT PRIMARY KEY,
	evidence_title TEXT NOT NULL,
	evidence_description TEXT,
	evidence_file_path TEXT,
	evidence_drive_link TEXT,
	evidence_parameter_id TEXT NOT NULL,
	evidence_sub_parameter_id TEXT,
	evidence_uploaded_by TEXT NOT NULL,
	evidence_status TEXT NOT NULL DEFAULT 'pending',
	evidence_status_comment TEXT,
	evidence_status_updated_by TEXT,
	evidence_status_updated_at DATETIME,
	evidence_downloads INTEGER NOT NULL DEFAULT 0,
	evidence_last_downloaded_at DATETIME,
	evidence_created_at DATETIME,
	evidence_updated_at DATETIME
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

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	param accModel.ParameterModel
	sub   accModel.SubParameterModel
	owner userModel.UserModel
	other userModel.UserModel
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range strings.Split(testSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}

	// direktori upload terisolasi per test
	origUpload, origLegacy := configs.UploadDir, configs.LegacyUploadDirs
	configs.UploadDir = t.TempDir()
	configs.LegacyUploadDirs = []string{t.TempDir()}
	t.Cleanup(func() {
		configs.UploadDir, configs.LegacyUploadDirs = origUpload, origLegacy
	})

	app := fiber.New()
	// stub auth: identitas + permission diambil dari header test
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals(helper.LocUserID, id)
		}
		if perms := c.Get("X-Test-Perms"); perms != "" {
			c.Locals(helper.LocPermissions, strings.Split(perms, ","))
		}
		return c.Next()
	})
	evidenceRoute.EvidenceRoutes(app.Group("/api"), db)

	env := &testEnv{app: app, db: db}

	env.owner = userModel.UserModel{Username: "uploader", FullName: "Uploader"}
	env.other = userModel.UserModel{Username: "orang_lain", FullName: "Orang Lain"}
	require.NoError(t, db.Create(&env.owner).Error)
	require.NoError(t, db.Create(&env.other).Error)

	program := accModel.ProgramModel{ProgramName: "S1 Informatika"}
	require.NoError(t, db.Create(&program).Error)
	area := accModel.AreaLevelModel{AreaLevelProgramID: program.ProgramID, AreaLevelName: "Standar 1"}
	require.NoError(t, db.Create(&area).Error)
	env.param = accModel.ParameterModel{ParameterAreaLevelID: area.AreaLevelID, ParameterName: "Kurikulum"}
	require.NoError(t, db.Create(&env.param).Error)
	env.sub = accModel.SubParameterModel{SubParameterParameterID: env.param.ParameterID, SubParameterName: "RPS"}
	require.NoError(t, db.Create(&env.sub).Error)

	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request, userID uuid.UUID, perms ...string) *http.Response {
	t.Helper()
	if userID != uuid.Nil {
		req.Header.Set("X-Test-User", userID.String())
	}
	if len(perms) > 0 {
		req.Header.Set("X-Test-Perms", strings.Join(perms, ","))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (e *testEnv) countEvidence(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&evidenceModel.EvidenceModel{}).Count(&n).Error)
	return n
}

func (e *testEnv) countActivity(t *testing.T, activityType string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&activityModel.ActivityLogModel{}).
		Where("activity_log_type = ?", activityType).Count(&n).Error)
	return n
}

func (e *testEnv) seedDriveEvidence(t *testing.T, uploadedBy uuid.UUID) evidenceModel.EvidenceModel {
	t.Helper()
	link := "https://drive.example.com/d/abc123"
	ev := evidenceModel.EvidenceModel{
		EvidenceTitle:       "Bukti Drive",
		EvidenceDriveLink:   &link,
		EvidenceParameterID: e.param.ParameterID,
		EvidenceUploadedBy:  uploadedBy,
		EvidenceStatus:      evidenceModel.StatusPending,
	}
	require.NoError(t, e.db.Create(&ev).Error)
	return ev
}

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

/* =========================================================
   UPLOAD
   ========================================================= */

func TestUploadEvidence(t *testing.T) {
	t.Run("drive link tersimpan pending plus satu baris activity", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title":      "SK Kurikulum",
			"evidence_type":       "drive",
			"evidence_drive_link": "https://drive.example.com/d/xyz",
			"parameter_id":        env.param.ParameterID.String(),
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var ev evidenceModel.EvidenceModel
		require.NoError(t, env.db.First(&ev).Error)
		assert.Equal(t, evidenceModel.StatusPending, ev.EvidenceStatus)
		assert.Equal(t, env.owner.ID, ev.EvidenceUploadedBy)
		assert.Equal(t, evidenceModel.TypeDrive, ev.Type())

		assert.EqualValues(t, 1, env.countActivity(t, activityModel.ActivityEvidenceUploaded))
	})

	t.Run("file pdf tersimpan ke disk", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title": "Laporan",
			"evidence_type":  "file",
			"parameter_id":   env.param.ParameterID.String(),
		}, "evidence_file", "laporan.pdf", pdfContent)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var ev evidenceModel.EvidenceModel
		require.NoError(t, env.db.First(&ev).Error)
		require.NotNil(t, ev.EvidenceFilePath)
		_, err := os.Stat(filepath.Join(configs.UploadDir, *ev.EvidenceFilePath))
		assert.NoError(t, err)
	})

	t.Run("sub parameter menurunkan parameter induknya", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title":      "Bukti RPS",
			"evidence_type":       "drive",
			"evidence_drive_link": "https://drive.example.com/d/rps",
			"sub_parameter_id":    env.sub.SubParameterID.String(),
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var ev evidenceModel.EvidenceModel
		require.NoError(t, env.db.First(&ev).Error)
		assert.Equal(t, env.param.ParameterID, ev.EvidenceParameterID)
		require.NotNil(t, ev.EvidenceSubParameterID)
		assert.Equal(t, env.sub.SubParameterID, *ev.EvidenceSubParameterID)
	})

	t.Run("tipe file terlarang ditolak tanpa baris tersimpan", func(t *testing.T) {
		env := setupEnv(t)
		elf := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 64)...)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title": "Jahat",
			"evidence_type":  "file",
			"parameter_id":   env.param.ParameterID.String(),
		}, "evidence_file", "jahat.pdf", elf)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.EqualValues(t, 0, env.countEvidence(t))

		entries, err := os.ReadDir(configs.UploadDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("tipe file tanpa lampiran ditolak", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title": "Tanpa File",
			"evidence_type":  "file",
			"parameter_id":   env.param.ParameterID.String(),
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeEnvelope(t, resp)["message"], "Tidak ada file")
		assert.EqualValues(t, 0, env.countEvidence(t))
	})

	t.Run("tipe drive dengan link kosong ditolak tanpa baris tersimpan", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title":      "Link Kosong",
			"evidence_type":       "drive",
			"evidence_drive_link": "   ",
			"parameter_id":        env.param.ParameterID.String(),
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.EqualValues(t, 0, env.countEvidence(t))
	})

	t.Run("tanpa add_evidence ditolak tanpa baris tersimpan", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title":      "Nekat",
			"evidence_type":       "drive",
			"evidence_drive_link": "https://drive.example.com/d/nekat",
			"parameter_id":        env.param.ParameterID.String(),
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		// hanya view_evidence (role viewer)
		resp := env.do(t, req, env.other.ID, constants.PermViewEvidence)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.EqualValues(t, 0, env.countEvidence(t))
	})

	t.Run("insert gagal: file yang terlanjur tersimpan ikut dihapus", func(t *testing.T) {
		env := setupEnv(t)
		require.NoError(t, env.db.Exec("DROP TABLE evidence").Error)

		body, ct := multipartBody(t, map[string]string{
			"evidence_title": "Gagal Simpan",
			"evidence_type":  "file",
			"parameter_id":   env.param.ParameterID.String(),
		}, "evidence_file", "gagal.pdf", pdfContent)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		entries, err := os.ReadDir(configs.UploadDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("tanpa node induk ditolak", func(t *testing.T) {
		env := setupEnv(t)
		body, ct := multipartBody(t, map[string]string{
			"evidence_title":      "Yatim",
			"evidence_type":       "drive",
			"evidence_drive_link": "https://drive.example.com/d/x",
		}, "", "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/evidence/", body)
		req.Header.Set("Content-Type", ct)
		resp := env.do(t, req, env.owner.ID, constants.PermAddEvidence)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

/* =========================================================
   LIST / GET
   ========================================================= */

func TestListEvidence(t *testing.T) {
	t.Run("tanpa node mengembalikan indeks pemilihan", func(t *testing.T) {
		env := setupEnv(t)
		env.seedDriveEvidence(t, env.owner.ID)

		req := httptest.NewRequest(http.MethodGet, "/api/evidence/", nil)
		resp := env.do(t, req, env.owner.ID, constants.PermViewEvidence)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := decodeEnvelope(t, resp)["data"].(map[string]any)
		assert.Len(t, data["parameters"], 1)
		assert.Len(t, data["sub_parameters"], 1)
	})

	t.Run("per parameter dengan kapabilitas per baris", func(t *testing.T) {
		env := setupEnv(t)
		env.seedDriveEvidence(t, env.owner.ID)

		req := httptest.NewRequest(http.MethodGet,
			"/api/evidence/?parameter_id="+env.param.ParameterID.String(), nil)
		resp := env.do(t, req, env.other.ID, constants.PermViewEvidence)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		rows := decodeEnvelope(t, resp)["data"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		// bukan owner dan tanpa edit/delete permission
		assert.False(t, row["can_edit"].(bool))
		assert.False(t, row["can_delete"].(bool))
	})
}

func TestGetEvidence(t *testing.T) {
	t.Run("id tidak ada", func(t *testing.T) {
		env := setupEnv(t)
		req := httptest.NewRequest(http.MethodGet, "/api/evidence/"+uuid.NewString(), nil)
		resp := env.do(t, req, env.owner.ID, constants.PermViewEvidence)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-owner tanpa permission ditolak", func(t *testing.T) {
		env := setupEnv(t)
		ev := env.seedDriveEvidence(t, env.owner.ID)
		req := httptest.NewRequest(http.MethodGet, "/api/evidence/"+ev.EvidenceID.String(), nil)
		resp := env.do(t, req, env.other.ID)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

/* =========================================================
   UPDATE / DELETE (owner-or-permission)
   ========================================================= */

func TestUpdateEvidence(t *testing.T) {
	t.Run("owner boleh tanpa permission", func(t *testing.T) {
		env := setupEnv(t)
		ev := env.seedDriveEvidence(t, env.owner.ID)

		payload := bytes.NewBufferString(`{"evidence_title":"Judul Baru"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/evidence/"+ev.EvidenceID.String(), payload)
		req.Header.Set("Content-Type", "application/json")
		resp := env.do(t, req, env.owner.ID)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got evidenceModel.EvidenceModel
		require.NoError(t, env.db.First(&got, "evidence_id = ?", ev.EvidenceID).Error)
		assert.Equal(t, "Judul Baru", got.EvidenceTitle)
	})

	t.Run("non-owner tanpa permission ditolak dan baris utuh", func(t *testing.T) {
		env := setupEnv(t)
		ev := env.seedDriveEvidence(t, env.owner.ID)

		payload := bytes.NewBufferString(`{"evidence_title":"Dibajak"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/evidence/"+ev.EvidenceID.String(), payload)
		req.Header.Set("Content-Type", "application/json")
		resp := env.do(t, req, env.other.ID, constants.PermViewEvidence)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var got evidenceModel.EvidenceModel
		require.NoError(t, env.db.First(&got, "evidence_id = ?", ev.EvidenceID).Error)
		assert.Equal(t, "Bukti Drive", got.EvidenceTitle)
	})

	t.Run("non-owner dengan edit_evidence boleh", func(t *testing.T) {
		env := setupEnv(t)
		ev := env.seedDriveEvidence(t, env.owner.ID)

		payload := bytes.NewBufferString(`{"evidence_title":"Revisi Admin"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/evidence/"+ev.EvidenceID.String(), payload)
		req.Header.Set("Content-Type", "application/json")
		resp := env.do(t, req, env.other.ID, constants.PermEditEvidence)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("drive link tidak bisa ditambahkan ke bukti file", func(t *testing.T) {
		env := setupEnv(t)
		path := "evidence_1_ab_x.pdf"
		ev := evidenceModel.EvidenceModel{
			EvidenceTitle:       "Bukti File",
			EvidenceFilePath:    &path,
			EvidenceParameterID: env.param.ParameterID,
			EvidenceUploadedBy:  env.owner.ID,
			EvidenceStatus:      evidenceModel.StatusPending,
		}
		require.NoError(t, env.db.Create(&ev).Error)

		payload := bytes.NewBufferString(`{"evidence_drive_link":"https://drive.example.com/d/h"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/evidence/"+ev.EvidenceID.String(), payload)
		req.Header.Set("Content-Type", "application/json")
		resp := env.do(t, req, env.owner.ID)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteEvidence(t *testing.T) {
	t.Run("owner menghapus baris dan file fisik", func(t *testing.T) {
		env := setupEnv(t)

		stored := "evidence_1_ab_laporan.pdf"
		require.NoError(t, os.WriteFile(filepath.Join(configs.UploadDir, stored), pdfContent, 0o644))
		ev := evidenceModel.EvidenceModel{
			EvidenceTitle:       "Akan Dihapus",
			EvidenceFilePath:    &stored,
			EvidenceParameterID: env.param.ParameterID,
			EvidenceUploadedBy:  env.owner.ID,
			EvidenceStatus:      evidenceModel.StatusPending,
		}
		require.NoError(t, env.db.Create(&ev).Error)

		req := httptest.NewRequest(http.MethodDelete, "/api/evidence/"+ev.EvidenceID.String(), nil)
		resp := env.do(t, req, env.owner.ID)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 0, env.countEvidence(t))
		_, err := os.Stat(filepath.Join(configs.UploadDir, stored))
		assert.True(t, os.IsNotExist(err))
		assert.EqualValues(t, 1, env.countActivity(t, activityModel.ActivityEvidenceDeleted))
	})

	t.Run("non-owner tanpa permission ditolak", func(t *testing.T) {
		env := setupEnv(t)
		ev := env.seedDriveEvidence(t, env.owner.ID)

		req := httptest.NewRequest(http.MethodDelete, "/api/evidence/"+ev.EvidenceID.String(), nil)
		resp := env.do(t, req, env.other.ID)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.EqualValues(t, 1, env.countEvidence(t))
	})
}
