package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "akreditasiku_backend/internals/features/activity/model"
	activityService "akreditasiku_backend/internals/features/activity/service"
	helper "akreditasiku_backend/internals/helpers"
)

type ActivityLogController struct {
	DB *gorm.DB
}

// GET /api/activity-logs?type=&user_id=&from=&to=&page=&per_page=
func (h *ActivityLogController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := h.DB.Model(&activityModel.ActivityLogModel{})

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("activity_log_type = ?", t)
	}
	if uid := strings.TrimSpace(c.Query("user_id")); uid != "" {
		q = q.Where("activity_log_user_id = ?", uid)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		if ts, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("activity_log_created_at >= ?", ts)
		}
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		if ts, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("activity_log_created_at < ?", ts.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung activity log")
	}

	var rows []activityModel.ActivityLogModel
	if err := q.Order("activity_log_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil activity log")
	}

	return helper.JsonList(c, "Activity log", rows, helper.BuildPagination(paging, total))
}

// POST /api/activity-logs/prune?days=N
func (h *ActivityLogController) Prune(c *fiber.Ctx) error {
	days, err := strconv.Atoi(strings.TrimSpace(c.Query("days", "")))
	if err != nil || days < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter days wajib angka >= 1")
	}

	n, err := activityService.PruneOlderThan(h.DB, days)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus activity log lama")
	}

	var actor *uuid.UUID
	if id, err := helper.GetUserIDFromLocals(c); err == nil {
		actor = &id
	}
	activityService.Record(h.DB, c, actor, activityModel.ActivityLogPruned,
		"Pruning activity log", map[string]any{"days": days, "deleted": n})

	return helper.JsonOK(c, "Activity log lama dihapus", fiber.Map{"deleted": n, "days": days})
}
