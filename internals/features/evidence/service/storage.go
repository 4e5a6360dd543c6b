package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"akreditasiku_backend/internals/configs"
	"akreditasiku_backend/internals/constants"
	helper "akreditasiku_backend/internals/helpers"
)

var (
	ErrNoFile         = errors.New("tidak ada file yang dipilih")
	ErrEmptyFile      = errors.New("file kosong")
	ErrDisallowedType = errors.New("tipe file tidak diizinkan")
)

// SaveEvidenceFile memvalidasi lalu menyimpan file bukti ke uploadDir.
// Tipe dicek dari sniffing isi file (bukan header klien). Nama file dibuat
// anti-tabrakan; direktori dibuat on demand.
// Mengembalikan nama file tersimpan + MIME hasil sniffing.
func SaveEvidenceFile(fh *multipart.FileHeader, uploadDir string) (string, string, error) {
	if fh == nil {
		return "", "", ErrNoFile
	}
	if fh.Size == 0 {
		return "", "", ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", "", err
	}
	if !constants.IsAllowedEvidenceMIME(mt.String()) {
		return "", "", ErrDisallowedType
	}

	// reader sudah maju karena sniffing
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", "", err
	}

	stored := helper.GenerateEvidenceFilename(fh.Filename)
	dst, err := os.Create(filepath.Join(uploadDir, stored))
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", "", err
	}

	return stored, mt.String(), nil
}

// CandidateDirs mengembalikan urutan prioritas lokasi file bukti:
// direktori upload aktif dulu, lalu lokasi historis.
func CandidateDirs() []string {
	dirs := []string{configs.UploadDir}
	dirs = append(dirs, configs.LegacyUploadDirs...)
	return dirs
}

// ResolveEvidencePath mencari file tersimpan di daftar kandidat direktori;
// kandidat pertama yang ada menang. Path mentah dicoba terakhir untuk
// toleransi file_path lama yang tersimpan absolut.
func ResolveEvidencePath(stored string, dirs []string) (string, bool) {
	if stored == "" {
		return "", false
	}
	base := filepath.Base(stored) // jangan biarkan path traversal dari data lama
	for _, d := range dirs {
		p := filepath.Join(d, base)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	if st, err := os.Stat(stored); err == nil && !st.IsDir() {
		return stored, true
	}
	return "", false
}

// RemoveEvidenceFile menghapus file tersimpan (dan preview-nya) best-effort.
func RemoveEvidenceFile(stored string) {
	if stored == "" {
		return
	}
	if p, ok := ResolveEvidencePath(stored, CandidateDirs()); ok {
		_ = os.Remove(p)
		_ = os.Remove(p + ".webp")
	}
}
