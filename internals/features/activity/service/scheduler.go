package service

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"akreditasiku_backend/internals/configs"
)

func nowMinusDays(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}

// StartMaintenanceScheduler menjalankan job perawatan harian:
// - pruning activity log sesuai retensi
// - pembersihan token blacklist yang kadaluarsa
func StartMaintenanceScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("30 2 * * *", func() {
		days := configs.ActivityLogRetentionDays
		if days <= 0 {
			return
		}
		n, err := PruneOlderThan(db, days)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal prune activity log: %v", err)
			return
		}
		log.Printf("[CLEANUP] %d baris activity log > %d hari dihapus", n, days)
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal daftar job prune: %v", err)
	}

	_, err = c.AddFunc("0 3 * * *", func() {
		res := db.Exec("DELETE FROM token_blacklist WHERE expired_at < ?", time.Now())
		if res.Error != nil {
			log.Printf("[CLEANUP ERROR] Gagal bersihkan token blacklist: %v", res.Error)
			return
		}
		log.Printf("[CLEANUP] %d token blacklist kadaluarsa dihapus", res.RowsAffected)
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal daftar job blacklist: %v", err)
	}

	c.Start()
	return c
}
