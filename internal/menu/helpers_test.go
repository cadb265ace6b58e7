package menu

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func setupDB(t *testing.T) {
	t.Helper()
	closeDB, err := database.UseMemory()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(closeDB)
}

// newTestApp mounts the handlers without the auth layer.
func newTestApp() *fiber.App {
	app := fiber.New()

	app.Get("/menu", PublicMenuHandler())

	app.Get("/categories", ListCategoriesHandler())
	app.Get("/categories/:id", GetCategoryHandler())
	app.Post("/categories", CreateCategoryHandler())
	app.Put("/categories/:id", UpdateCategoryHandler())
	app.Delete("/categories/:id", DeleteCategoryHandler())

	app.Put("/menu-items/bulk-update", BulkUpdateHandler())
	app.Post("/menu-items/bulk-delete", BulkDeleteHandler())

	app.Get("/menu-items", ListItemsHandler())
	app.Get("/menu-items/:id", GetItemHandler())
	app.Post("/menu-items", CreateItemHandler())
	app.Put("/menu-items/:id", UpdateItemHandler())
	app.Delete("/menu-items/:id", DeleteItemHandler())

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func mustStatus(t *testing.T, got, want int, body []byte) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d (body %s)", got, want, body)
	}
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	cat := models.Category{Name: name}
	if err := database.DB.Create(&cat).Error; err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return cat
}

func createItem(t *testing.T, name string, price float64, categoryID uint, active bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Description: name + " description",
		Price:       price,
		CategoryID:  categoryID,
		Active:      active,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return item
}

func reloadItem(t *testing.T, id uint) (models.MenuItem, bool) {
	t.Helper()
	var item models.MenuItem
	res := database.DB.Limit(1).Find(&item, id)
	if res.Error != nil {
		t.Fatalf("reload item %d: %v", id, res.Error)
	}
	return item, res.RowsAffected == 1
}
