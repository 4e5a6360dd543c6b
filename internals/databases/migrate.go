package database

import (
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations menjalankan semua migrasi SQL yang belum diterapkan.
// Skema eksplisit & berversi — tidak ada deteksi kolom runtime.
func RunMigrations() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
			getenv("DB_SSLMODE", "require"),
		)
	}

	src := getenv("MIGRATIONS_DIR", "file://internals/databases/migrations")

	m, err := migrate.New(src, dbURL)
	if err != nil {
		return fmt.Errorf("gagal membuat instance migrasi: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		log.Printf("⚠️ Tidak bisa baca versi migrasi: %v", err)
	}
	if dirty {
		log.Printf("⚠️ Database dirty di versi %d, force clean...", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("gagal force versi: %w", err)
		}
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("✅ Skema database sudah up to date")
			return nil
		}
		return fmt.Errorf("gagal menjalankan migrasi: %w", err)
	}

	if v, _, err := m.Version(); err == nil {
		log.Printf("✅ Migrasi selesai, versi skema: %d", v)
	}
	return nil
}
