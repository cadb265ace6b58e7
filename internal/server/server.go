package server

import (
	"log"
	"strings"

	"cordonbleu-backend/internal/audit"
	"cordonbleu-backend/internal/auth"
	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/menu"
	"cordonbleu-backend/internal/models"
	"cordonbleu-backend/internal/offers"
	"cordonbleu-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// multipart overhead on top of the largest accepted image
const bodyLimitSlack = 1024 * 1024

// ErrorHandler renders every error as {"error": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Unexpected server error",
	})
}

// New builds the application. The database must be initialised first.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    int(cfg.MaxUploadBytes) + bodyLimitSlack,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Static(upload.PublicPath, cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to Cordon Bleu Haus API"})
	})

	api := app.Group("/api")

	jwt := auth.JWTMiddleware(cfg)
	admin := []fiber.Handler{jwt, auth.RequireRole(models.RoleAdmin)}
	withAdmin := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, admin...), h)
	}

	// Auth
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/auth/me", jwt, auth.MeHandler())

	// Public menu view: active items and the categories they use
	api.Get("/menu", menu.PublicMenuHandler())

	// Categories
	api.Get("/categories", menu.ListCategoriesHandler())
	api.Get("/categories/:id", menu.GetCategoryHandler())
	api.Post("/categories", withAdmin(menu.CreateCategoryHandler())...)
	api.Put("/categories/:id", withAdmin(menu.UpdateCategoryHandler())...)
	api.Delete("/categories/:id", withAdmin(menu.DeleteCategoryHandler())...)

	// Menu items; bulk routes are registered before /:id so they are not
	// captured as an id
	api.Put("/menu-items/bulk-update", withAdmin(menu.BulkUpdateHandler())...)
	api.Post("/menu-items/bulk-delete", withAdmin(menu.BulkDeleteHandler())...)
	api.Get("/menu-items", menu.ListItemsHandler())
	api.Get("/menu-items/:id", menu.GetItemHandler())
	api.Post("/menu-items", withAdmin(menu.CreateItemHandler())...)
	api.Put("/menu-items/:id", withAdmin(menu.UpdateItemHandler())...)
	api.Delete("/menu-items/:id", withAdmin(menu.DeleteItemHandler())...)

	// Special offers
	api.Get("/special-offers", offers.ListOffersHandler())
	api.Get("/special-offers/:id", offers.GetOfferHandler())
	api.Post("/special-offers", withAdmin(offers.CreateOfferHandler())...)
	api.Put("/special-offers/:id", withAdmin(offers.UpdateOfferHandler())...)
	api.Delete("/special-offers/:id", withAdmin(offers.DeleteOfferHandler())...)
	api.Patch("/special-offers/:id/toggle", withAdmin(offers.ToggleOfferHandler())...)

	// Uploads
	api.Post("/upload/image", withAdmin(upload.ImageHandler(cfg))...)

	// Audit trail
	api.Get("/audit-logs", withAdmin(audit.ListAuditLogsHandler())...)

	return app
}
