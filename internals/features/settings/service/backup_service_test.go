package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akreditasiku_backend/internals/configs"
)

func withBackupDir(t *testing.T) string {
	t.Helper()
	orig := configs.BackupDir
	configs.BackupDir = t.TempDir()
	t.Cleanup(func() { configs.BackupDir = orig })
	return configs.BackupDir
}

func TestIsValidBackupFilename(t *testing.T) {
	valid := []string{
		"backup_2025-01-01_00-00-00.sql",
		"backup_2026-08-30_23-59-59.sql",
	}
	for _, name := range valid {
		assert.True(t, IsValidBackupFilename(name), name)
	}

	invalid := []string{
		"",
		"backup.sql",
		"backup_2025-01-01_00-00-00.sql.gz",
		"backup_2025-1-1_0-0-0.sql",
		"../backup_2025-01-01_00-00-00.sql",
		"backup_2025-01-01_00-00-00.sql/../../etc/passwd",
		"..%2Fbackup_2025-01-01_00-00-00.sql",
		"restore_2025-01-01_00-00-00_dump.sql",
	}
	for _, name := range invalid {
		assert.False(t, IsValidBackupFilename(name), name)
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := withBackupDir(t)

	t.Run("nama tidak valid", func(t *testing.T) {
		_, err := ResolveBackupPath("../jahat.sql")
		require.ErrorIs(t, err, ErrInvalidBackupName)
	})

	t.Run("valid tapi tidak ada", func(t *testing.T) {
		_, err := ResolveBackupPath("backup_2025-01-01_00-00-00.sql")
		require.ErrorIs(t, err, ErrBackupNotFound)
	})

	t.Run("ditemukan", func(t *testing.T) {
		name := "backup_2025-06-01_10-00-00.sql"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- dump"), 0o644))
		p, err := ResolveBackupPath(name)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, name), p)
	})
}

func TestListBackups(t *testing.T) {
	dir := withBackupDir(t)

	// hanya nama pola backup_ yang muncul di daftar
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup_2025-01-02_08-00-00.sql"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catatan.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "restore_2025-01-02_08-00-00_x.sql"), []byte("c"), 0o644))

	out, err := ListBackups()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "backup_2025-01-02_08-00-00.sql", out[0].Name)
	assert.EqualValues(t, 1, out[0].SizeBytes)
}

func TestListBackupsMissingDir(t *testing.T) {
	orig := configs.BackupDir
	configs.BackupDir = filepath.Join(t.TempDir(), "belum_ada")
	t.Cleanup(func() { configs.BackupDir = orig })

	out, err := ListBackups()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDeleteBackup(t *testing.T) {
	dir := withBackupDir(t)
	name := "backup_2025-03-03_03-03-03.sql"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))

	require.NoError(t, DeleteBackup(name))
	_, err := os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, DeleteBackup("../"+name), ErrInvalidBackupName)
}

func restoreHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("backup_file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(len(content)) + 4096)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["backup_file"][0]
}

func TestSaveRestoreUpload(t *testing.T) {
	dir := withBackupDir(t)

	t.Run("hanya .sql diterima", func(t *testing.T) {
		_, err := SaveRestoreUpload(restoreHeader(t, "dump.sh", []byte("rm -rf /")))
		require.ErrorIs(t, err, ErrNotSQLFile)
	})

	t.Run("file sql tersimpan dengan prefix restore_", func(t *testing.T) {
		name, err := SaveRestoreUpload(restoreHeader(t, "dump lama.sql", []byte("SELECT 1;")))
		require.NoError(t, err)
		assert.Contains(t, name, "restore_")
		assert.Contains(t, name, "dump_lama.sql")

		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []byte("SELECT 1;"), got)
	})
}
