package service

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
)

// Record menulis satu baris activity log. Best-effort: kegagalan menulis log
// tidak boleh menggagalkan request yang memanggilnya.
func Record(db *gorm.DB, c *fiber.Ctx, actorID *uuid.UUID, activityType, description string, meta map[string]any) {
	row := activityModel.ActivityLogModel{
		ActivityLogUserID:      actorID,
		ActivityLogType:        activityType,
		ActivityLogDescription: description,
	}

	if c != nil {
		row.ActivityLogIPAddress = c.IP()
		row.ActivityLogUserAgent = c.Get("User-Agent")
	}

	if len(meta) > 0 {
		if raw, err := json.Marshal(meta); err == nil {
			row.ActivityLogMetadata = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&row).Error; err != nil {
		log.Printf("[ACTIVITY] gagal tulis log %s: %v", activityType, err)
	}
}

// PruneOlderThan menghapus baris log yang lebih tua dari days hari.
// Mengembalikan jumlah baris terhapus.
func PruneOlderThan(db *gorm.DB, days int) (int64, error) {
	res := db.Exec(
		"DELETE FROM activity_logs WHERE activity_log_created_at < ?",
		nowMinusDays(days),
	)
	return res.RowsAffected, res.Error
}
