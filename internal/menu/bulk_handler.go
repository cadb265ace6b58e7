package menu

import (
	"fmt"
	"log"
	"strings"

	"cordonbleu-backend/internal/audit"
	"cordonbleu-backend/internal/auth"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BulkUpdateRequest struct {
	ItemIDs []uint         `json:"itemIds"`
	Updates map[string]any `json:"updates"`
}

type BulkDeleteRequest struct {
	ItemIDs []uint `json:"itemIds"`
}

type BulkUpdateResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// patchable maps JSON patch keys to columns.
var patchable = map[string]string{
	"name":         "name",
	"description":  "description",
	"price":        "price",
	"image":        "image",
	"category":     "category_id",
	"active":       "active",
	"featured":     "featured",
	"seasonal":     "seasonal",
	"specialOffer": "special_offer",
}

// PUT /api/menu-items/bulk-update
// Ids that match no stored item are ignored. The batch is not transactional,
// modifiedCount is what actually changed.
func BulkUpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkUpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.ItemIDs) == 0 || len(body.Updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: itemIds and updates are required.")
		}

		columns, err := buildPatch(body.Updates)
		if err != nil {
			return err
		}
		if catID, ok := columns["category_id"].(uint); ok {
			if err := requireCategory(catID); err != nil {
				return err
			}
		}

		result := database.DB.Model(&models.MenuItem{}).Where("id IN ?", body.ItemIDs).Updates(columns)
		if result.Error != nil {
			log.Printf("bulk update menu items: %v", result.Error)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to bulk update menu items")
		}
		log.Printf("bulk update: %d of %d requested menu items modified", result.RowsAffected, len(body.ItemIDs))

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityMenuItem,
			Action:      models.AuditActionBulkUpdate,
			Description: fmt.Sprintf("Bulk update of %d menu items", result.RowsAffected),
			After:       body,
		})

		return c.JSON(BulkUpdateResponse{
			Message:       fmt.Sprintf("Successfully updated %d items.", result.RowsAffected),
			ModifiedCount: result.RowsAffected,
		})
	}
}

// POST /api/menu-items/bulk-delete
func BulkDeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkDeleteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.ItemIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: itemIds array is required.")
		}

		result := database.DB.Where("id IN ?", body.ItemIDs).Delete(&models.MenuItem{})
		if result.Error != nil {
			log.Printf("bulk delete menu items: %v", result.Error)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to bulk delete menu items")
		}
		log.Printf("bulk delete: %d of %d requested menu items deleted", result.RowsAffected, len(body.ItemIDs))

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityMenuItem,
			Action:      models.AuditActionBulkDelete,
			Description: fmt.Sprintf("Bulk delete of %d menu items", result.RowsAffected),
			Before:      body,
		})

		return c.JSON(BulkDeleteResponse{
			Message:      fmt.Sprintf("Successfully deleted %d items.", result.RowsAffected),
			DeletedCount: result.RowsAffected,
		})
	}
}

// buildPatch validates a JSON patch and returns it keyed by column name.
// JSON numbers arrive as float64.
func buildPatch(updates map[string]any) (map[string]any, error) {
	columns := make(map[string]any, len(updates))
	for key, value := range updates {
		column, ok := patchable[key]
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Field cannot be bulk updated: "+key)
		}

		switch key {
		case "name", "description":
			s, ok := value.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a non-empty string")
			}
			columns[column] = strings.TrimSpace(s)
		case "image":
			s, ok := value.(string)
			if !ok {
				return nil, fiber.NewError(fiber.StatusBadRequest, "image must be a string")
			}
			columns[column] = strings.TrimSpace(s)
		case "price":
			f, ok := value.(float64)
			if !ok || f < 0 {
				return nil, fiber.NewError(fiber.StatusBadRequest, "price must be a non-negative number")
			}
			columns[column] = f
		case "category":
			f, ok := value.(float64)
			if !ok || f <= 0 || f != float64(uint(f)) {
				return nil, fiber.NewError(fiber.StatusBadRequest, "category must be a category id")
			}
			columns[column] = uint(f)
		default:
			b, ok := value.(bool)
			if !ok {
				return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be true or false")
			}
			columns[column] = b
		}
	}
	return columns, nil
}
