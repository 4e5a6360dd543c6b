package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string

	// Direktori penyimpanan bukti & backup
	UploadDir        string
	LegacyUploadDirs []string
	BackupDir        string

	// Retensi activity log (hari) untuk scheduler
	ActivityLogRetentionDays int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET belum diset!")
	}

	UploadDir = GetEnv("UPLOAD_DIR", "uploads/evidence")
	BackupDir = GetEnv("BACKUP_DIR", "backups")

	// Kandidat lokasi lama untuk file_path historis (dipisah koma).
	// Resolusi download mencoba UploadDir dulu, lalu daftar ini berurutan.
	LegacyUploadDirs = nil
	for _, d := range strings.Split(GetEnv("LEGACY_UPLOAD_DIRS", "uploads,files/evidence"), ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			LegacyUploadDirs = append(LegacyUploadDirs, d)
		}
	}

	ActivityLogRetentionDays = GetEnvInt("ACTIVITY_LOG_RETENTION_DAYS", 180)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
