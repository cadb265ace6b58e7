package offers

import (
	"errors"
	"log"
	"strings"
	"time"

	"cordonbleu-backend/internal/audit"
	"cordonbleu-backend/internal/auth"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/httpx"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const entitySpecialOffer = "special_offer"

type OfferResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	ValidUntil  time.Time        `json:"validUntil"`
	Type        models.OfferType `json:"type"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type CreateOfferRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	ValidUntil  string           `json:"validUntil"`
	Type        models.OfferType `json:"type"`
	Active      *bool            `json:"active"`
}

type UpdateOfferRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	ValidUntil  *string           `json:"validUntil"`
	Type        *models.OfferType `json:"type"`
	Active      *bool             `json:"active"`
}

func toOfferResponse(o *models.SpecialOffer) OfferResponse {
	return OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Image:       o.Image,
		ValidUntil:  o.ValidUntil,
		Type:        o.Type,
		Active:      o.Active,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ParseValidUntil accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseValidUntil(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "validUntil must be a date (YYYY-MM-DD or RFC 3339)")
	}
	return t, nil
}

// GET /api/special-offers?active=true
// Newest first. active=true is the public list, no parameter lists everything.
func ListOffersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SpecialOffer{})
		if c.Query("active") == "true" {
			dbq = dbq.Where("active = ?", true)
		}

		var offers []models.SpecialOffer
		if err := dbq.Order("created_at desc, id desc").Find(&offers).Error; err != nil {
			log.Printf("list special offers: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch special offers")
		}

		res := make([]OfferResponse, 0, len(offers))
		for i := range offers {
			res = append(res, toOfferResponse(&offers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/special-offers/:id
func GetOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		offer, err := findOffer(id)
		if err != nil {
			return err
		}
		return c.JSON(toOfferResponse(offer))
	}
}

// POST /api/special-offers
func CreateOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		body.Description = strings.TrimSpace(body.Description)
		body.Image = strings.TrimSpace(body.Image)
		if body.Title == "" || body.Description == "" || body.Image == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title, description and image are required")
		}
		if !body.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Type must be 'promotion' or 'event'")
		}
		validUntil, err := ParseValidUntil(body.ValidUntil)
		if err != nil {
			return err
		}

		offer := models.SpecialOffer{
			Title:       body.Title,
			Description: body.Description,
			Image:       body.Image,
			ValidUntil:  validUntil,
			Type:        body.Type,
			Active:      true,
		}
		if body.Active != nil {
			offer.Active = *body.Active
		}

		if err := database.DB.Create(&offer).Error; err != nil {
			log.Printf("create special offer: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create special offer")
		}

		res := toOfferResponse(&offer)
		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entitySpecialOffer,
			EntityID:    offer.ID,
			Action:      models.AuditActionCreate,
			Description: "Special offer created: " + offer.Title,
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/special-offers/:id
func UpdateOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		offer, err := findOffer(id)
		if err != nil {
			return err
		}
		before := toOfferResponse(offer)

		var body UpdateOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Title != nil {
			v := strings.TrimSpace(*body.Title)
			if v == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
			}
			offer.Title = v
		}
		if body.Description != nil {
			v := strings.TrimSpace(*body.Description)
			if v == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Description cannot be empty")
			}
			offer.Description = v
		}
		if body.Image != nil {
			v := strings.TrimSpace(*body.Image)
			if v == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Image cannot be empty")
			}
			offer.Image = v
		}
		if body.ValidUntil != nil {
			t, err := ParseValidUntil(*body.ValidUntil)
			if err != nil {
				return err
			}
			offer.ValidUntil = t
		}
		if body.Type != nil {
			if !body.Type.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Type must be 'promotion' or 'event'")
			}
			offer.Type = *body.Type
		}
		if body.Active != nil {
			offer.Active = *body.Active
		}

		if err := database.DB.Save(offer).Error; err != nil {
			log.Printf("update special offer %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update special offer")
		}

		res := toOfferResponse(offer)
		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entitySpecialOffer,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Special offer updated: " + offer.Title,
			Before:      before,
			After:       res,
		})

		return c.JSON(res)
	}
}

// DELETE /api/special-offers/:id
func DeleteOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		offer, err := findOffer(id)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.SpecialOffer{}, id).Error; err != nil {
			log.Printf("delete special offer %d: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete special offer")
		}

		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entitySpecialOffer,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Special offer deleted: " + offer.Title,
			Before:      toOfferResponse(offer),
		})

		return c.JSON(fiber.Map{"message": "Special offer deleted successfully"})
	}
}

// PATCH /api/special-offers/:id/toggle
// Read-flip-write without locking; concurrent toggles of one offer are last write wins.
func ToggleOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		var offer models.SpecialOffer
		if err := database.DB.First(&offer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Special offer not found")
			}
			log.Printf("toggle special offer %d: load: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to toggle special offer status")
		}

		offer.Active = !offer.Active
		if err := database.DB.Save(&offer).Error; err != nil {
			log.Printf("toggle special offer %d: save: %v", id, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to toggle special offer status")
		}

		res := toOfferResponse(&offer)
		audit.Record(audit.LogOptions{
			UserID:      auth.CurrentUserID(c),
			EntityType:  entitySpecialOffer,
			EntityID:    id,
			Action:      models.AuditActionToggle,
			Description: "Special offer toggled: " + offer.Title,
			After:       res,
		})

		return c.JSON(res)
	}
}

func findOffer(id uint) (*models.SpecialOffer, error) {
	var offer models.SpecialOffer
	if err := database.DB.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Special offer not found")
		}
		log.Printf("find special offer %d: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch special offer")
	}
	return &offer, nil
}
