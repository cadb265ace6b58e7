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

const entityMenuItem = "menu_item"

type CreateItemRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"`
	Image        string   `json:"image"`
	Category     uint     `json:"category"`
	Active       *bool    `json:"active"`
	Featured     bool     `json:"featured"`
	Seasonal     bool     `json:"seasonal"`
	SpecialOffer bool     `json:"specialOffer"`
}

type UpdateItemRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Image        *string  `json:"image"`
	Category     *uint    `json:"category"`
	Active       *bool    `json:"active"`
	Featured     *bool    `json:"featured"`
	Seasonal     *bool    `json:"seasonal"`
	SpecialOffer *bool    `json:"specialOffer"`
}

// loadItems returns every menu item with its category, oldest first.
func loadItems() ([]ItemResponse, error) {
	var items []models.MenuItem
	if err := database.DB.Preload("Category").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// GET /api/menu-items?search=&categories=&minPrice=&maxPrice=&pricePreset=&active=
// Without filter parameters every item is returned (admin view).
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, hasFilter, err := ParseFilter(c)
		if err != nil {
			return err
		}

		items, err := loadItems()
		if err != nil {
			log.Printf("list menu items: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch menu items")
		}

		if hasFilter {
			items = Apply(items, filter)
		}
		return c.JSON(items)
	}
}

type PublicMenuResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Items      []ItemResponse     `json:"items"`
}

// GET /api/menu?category=Starters
func PublicMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := loadItems()
		if err != nil {
			log.Printf("public menu: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch menu items")
		}

		res := PublicMenuResponse{Categories: PublicCategories(items)}
		if name := c.Query("category"); name != "" {
			res.Items = PublicByCategory(items, name)
		} else {
			res.Items = PublicItems(items)
		}
		return c.JSON(res)
	}
}

// GET /api/menu-items/:id
func GetItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		item, err := findItem(id)
		if err != nil {
			return err
		}
		return c.JSON(toItemResponse(item))
	}
}

// POST /api/menu-items
func CreateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Description = strings.TrimSpace(body.Description)
		if body.Name == "" || body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and description are required")
		}
		if body.Price == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Price is required")
		}
		if *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}
		if err := requireCategory(body.Category); err != nil {
			return err
		}

		item := models.MenuItem{
			Name:         body.Name,
			Description:  body.Description,
			Price:        *body.Price,
			Image:        strings.TrimSpace(body.Image),
			CategoryID:   body.Category,
			Active:       true,
			Featured:     body.Featured,
			Seasonal:     body.Seasonal,
			SpecialOffer: body.SpecialOffer,
		}
		if body.Active != nil {
			item.Active = *body.Active
		}

		if err := database.DB.Create(&item).Error; err != nil {
			log.Printf("create menu item: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create menu item")
		}

		created, err := findItem(item.ID)
		if err != nil {
			return err
		}
		res := toItemResponse(created)

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityMenuItem,
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: "Menu item created: " + item.Name,
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/menu-items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		item, err := findItem(id)
		if err != nil {
			return err
		}
		before := toItemResponse(item)

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			item.Name = name
		}
		if body.Description != nil {
			desc := strings.TrimSpace(*body.Description)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Description cannot be empty")
			}
			item.Description = desc
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
			}
			item.Price = *body.Price
		}
		if body.Image != nil {
			item.Image = strings.TrimSpace(*body.Image)
		}
		if body.Category != nil {
			if err := requireCategory(*body.Category); err != nil {
				return err
			}
			item.CategoryID = *body.Category
			item.Category = nil
		}
		if body.Active != nil {
			item.Active = *body.Active
		}
		if body.Featured != nil {
			item.Featured = *body.Featured
		}
		if body.Seasonal != nil {
			item.Seasonal = *body.Seasonal
		}
		if body.SpecialOffer != nil {
			item.SpecialOffer = *body.SpecialOffer
		}

		if err := database.DB.Omit("Category").Save(item).Error; err != nil {
			log.Printf("update menu item %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update menu item")
		}

		updated, err := findItem(id)
		if err != nil {
			return err
		}
		res := toItemResponse(updated)

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityMenuItem,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Menu item updated: " + updated.Name,
			Before:      before,
			After:       res,
		})

		return c.JSON(res)
	}
}

// DELETE /api/menu-items/:id
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		item, err := findItem(id)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
			log.Printf("delete menu item %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete menu item")
		}

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entityMenuItem,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Menu item deleted: " + item.Name,
			Before:      toItemResponse(item),
		})

		return c.JSON(fiber.Map{"message": "Menu item deleted"})
	}
}

func findItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := database.DB.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}
		log.Printf("find menu item %d: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch menu item")
	}
	return &item, nil
}

// requireCategory turns a missing or unknown category reference into a 400.
func requireCategory(id uint) error {
	if id == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Category is required")
	}
	var count int64
	if err := database.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		log.Printf("check category %d: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check category")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Category does not exist")
	}
	return nil
}
