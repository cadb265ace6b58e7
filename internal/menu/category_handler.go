package menu

import (
	"errors"
	"log"
	"strings"

	"cordonbleu-backend/internal/audit"
	"cordonbleu-backend/internal/auth"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/httpx"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const entityCategory = "category"

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("id asc").Find(&categories).Error; err != nil {
			log.Printf("list categories: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch categories")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, toCategoryResponse(&categories[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/categories/:id
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		cat, err := findCategory(id)
		if err != nil {
			return err
		}
		return c.JSON(toCategoryResponse(cat))
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		cat := models.Category{
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			log.Printf("create category: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create category")
		}

		res := toCategoryResponse(&cat)
		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityCategory,
			EntityID:    cat.ID,
			Action:      models.AuditActionCreate,
			Description: "Category created: " + cat.Name,
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		cat, err := findCategory(id)
		if err != nil {
			return err
		}
		before := toCategoryResponse(cat)

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Category name cannot be empty")
			}
			cat.Name = name
		}
		if body.Description != nil {
			cat.Description = strings.TrimSpace(*body.Description)
		}

		if err := database.DB.Save(cat).Error; err != nil {
			log.Printf("update category %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update category")
		}

		res := toCategoryResponse(cat)
		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityCategory,
			EntityID:    cat.ID,
			Action:      models.AuditActionUpdate,
			Description: "Category updated: " + cat.Name,
			Before:      before,
			After:       res,
		})

		return c.JSON(res)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		cat, err := findCategory(id)
		if err != nil {
			return err
		}

		// menu items must always resolve their category
		var count int64
		if err := database.DB.Model(&models.MenuItem{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			log.Printf("delete category %d: count items: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete category")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "This category still has menu items, move or delete them first")
		}

		if err := database.DB.Delete(&models.Category{}, id).Error; err != nil {
			log.Printf("delete category %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete category")
		}

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityCategory,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Category deleted: " + cat.Name,
			Before:      toCategoryResponse(cat),
		})

		return c.JSON(fiber.Map{"message": "Category deleted"})
	}
}

func findCategory(id uint) (*models.Category, error) {
	var cat models.Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		log.Printf("find category %d: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch category")
	}
	return &cat, nil
}
