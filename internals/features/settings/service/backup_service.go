package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/configs"
	helper "akreditasiku_backend/internals/helpers"
)

// Hanya nama hasil CreateBackup yang boleh di-download/hapus.
// Regex ini sekaligus menutup path traversal lewat parameter nama file.
var backupFilenameRe = regexp.MustCompile(`^backup_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.sql$`)

var (
	ErrInvalidBackupName = errors.New("nama file backup tidak valid")
	ErrBackupNotFound    = errors.New("file backup tidak ditemukan")
	ErrNotSQLFile        = errors.New("hanya file .sql yang diterima")
)

func IsValidBackupFilename(name string) bool {
	return backupFilenameRe.MatchString(name)
}

type BackupInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBackup menjalankan pg_dump ke BackupDir dan mengembalikan nama file.
func CreateBackup() (string, error) {
	if err := os.MkdirAll(configs.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat direktori backup: %w", err)
	}

	name := "backup_" + time.Now().Format("2006-01-02_15-04-05") + ".sql"
	path := filepath.Join(configs.BackupDir, name)

	args := []string{
		"--no-owner",
		"--format=plain",
		"--file=" + path,
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		args = append(args, "--dbname="+url)
	} else {
		args = append(args,
			"--host="+configs.GetEnv("DB_HOST", "localhost"),
			"--port="+configs.GetEnv("DB_PORT", "5432"),
			"--username="+configs.GetEnv("DB_USER", "postgres"),
			configs.GetEnv("DB_NAME", "akreditasiku"),
		)
	}

	cmd := exec.Command("pg_dump", args...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+os.Getenv("DB_PASSWORD"))

	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		log.Printf("❌ pg_dump gagal: %v: %s", err, strings.TrimSpace(string(out)))
		return "", fmt.Errorf("pg_dump gagal: %w", err)
	}
	return name, nil
}

// ListBackups hanya menampilkan file yang lolos backupFilenameRe,
// terbaru lebih dulu.
func ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(configs.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, err
	}

	out := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsValidBackupFilename(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BackupInfo{
			Name:      e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ResolveBackupPath memvalidasi nama lalu memastikan file-nya ada.
func ResolveBackupPath(name string) (string, error) {
	if !IsValidBackupFilename(name) {
		return "", ErrInvalidBackupName
	}
	path := filepath.Join(configs.BackupDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrBackupNotFound
	}
	return path, nil
}

func DeleteBackup(name string) error {
	path, err := ResolveBackupPath(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// SaveRestoreUpload menyimpan file .sql kiriman admin ke BackupDir.
// File TIDAK dieksekusi; restore tetap operasi manual DBA.
func SaveRestoreUpload(fh *multipart.FileHeader) (string, error) {
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".sql") {
		return "", ErrNotSQLFile
	}
	if err := os.MkdirAll(configs.BackupDir, 0o755); err != nil {
		return "", err
	}

	name := "restore_" + time.Now().Format("2006-01-02_15-04-05") + "_" +
		helper.SanitizeFilename(filepath.Base(fh.Filename))
	path := filepath.Join(configs.BackupDir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return name, nil
}

type TableStat struct {
	TableName string `json:"table_name"`
	RowCount  int64  `json:"row_count"`
}

// TableStats menghitung baris per tabel di schema public.
// Nama tabel datang dari katalog, bukan user, tapi tetap di-quote.
func TableStats(db *gorm.DB) ([]TableStat, error) {
	var tables []string
	err := db.Raw(`
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`).Scan(&tables).Error
	if err != nil {
		return nil, err
	}

	out := make([]TableStat, 0, len(tables))
	for _, t := range tables {
		var n int64
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s", pq.QuoteIdentifier(t))
		if err := db.Raw(q).Scan(&n).Error; err != nil {
			return nil, err
		}
		out = append(out, TableStat{TableName: t, RowCount: n})
	}
	return out, nil
}
