package audit

import (
	"strconv"

	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// GET /api/audit-logs?entityType=menu_item&entityId=3&limit=50
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entityType"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if raw := c.Query("entityId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "entityId must be a positive integer")
			}
			dbq = dbq.Where("entity_id = ?", id)
		}

		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			if n > maxListLimit {
				n = maxListLimit
			}
			limit = n
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}
		return c.JSON(logs)
	}
}
