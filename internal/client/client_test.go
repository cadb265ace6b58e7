package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cordonbleu-backend/internal/auth"
	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/menu"
	"cordonbleu-backend/internal/models"
	"cordonbleu-backend/internal/server"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type fixture struct {
	client   *Client
	admin    *Session
	cfg      *config.Config
	requests *atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	closeDB, err := database.UseMemory()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(closeDB)

	cfg := &config.Config{
		JWTSecret:      strings.Repeat("z", 32),
		JWTExpiresIn:   time.Hour,
		CORSOrigins:    "http://localhost:5173",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}

	var requests atomic.Int64
	handler := adaptor.FiberApp(server.New(cfg))
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	hash, err := auth.HashPassword("chef-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := database.DB.Create(&models.User{Username: "chef", PasswordHash: hash, Role: models.RoleAdmin}).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	c := New(ts.URL + "/")
	s, err := c.Login(context.Background(), "chef", "chef-secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	return &fixture{client: c, admin: s, cfg: cfg, requests: &requests}
}

func (f *fixture) seedMenu(t *testing.T) (soup, steak *menu.ItemResponse) {
	t.Helper()
	ctx := context.Background()

	starters, err := f.client.CreateCategory(ctx, f.admin, menu.CreateCategoryRequest{Name: "Starters"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	mains, err := f.client.CreateCategory(ctx, f.admin, menu.CreateCategoryRequest{Name: "Mains"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	price := 9.0
	soup, err = f.client.CreateMenuItem(ctx, f.admin, menu.CreateItemRequest{
		Name: "Soup", Description: "Onion soup", Price: &price, Category: starters.ID,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}

	price, inactive := 32.0, false
	steak, err = f.client.CreateMenuItem(ctx, f.admin, menu.CreateItemRequest{
		Name: "Steak", Description: "Sirloin", Price: &price, Category: mains.ID, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return soup, steak
}

func TestLoginSession(t *testing.T) {
	f := newFixture(t)

	if !f.admin.LoggedIn() || f.admin.User.Role != models.RoleAdmin || f.admin.User.Username != "chef" {
		t.Errorf("session = %+v", f.admin)
	}

	_, err := f.client.Login(context.Background(), "chef", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Errorf("bad login error = %v", err)
	}

	f.admin.Logout()
	if f.admin.LoggedIn() {
		t.Error("session still logged in after Logout")
	}

	before := f.requests.Load()
	if _, err := f.client.BulkUpdate(context.Background(), f.admin, []uint{1}, map[string]any{"active": true}); !errors.Is(err, ErrNoSession) {
		t.Errorf("BulkUpdate after logout = %v, want ErrNoSession", err)
	}
	if f.requests.Load() != before {
		t.Error("a request was sent without a session")
	}
}

func TestRegisteredUserCannotAdminister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.client.Register(ctx, "guest", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	guest, err := f.client.Login(ctx, "guest", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = f.client.CreateCategory(ctx, guest, menu.CreateCategoryRequest{Name: "Secret"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Errorf("CreateCategory as user = %v, want 403", err)
	}
}

func TestMenuViewFromAPI(t *testing.T) {
	f := newFixture(t)
	f.seedMenu(t)

	view, err := f.client.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("FetchMenu: %v", err)
	}

	if len(view.Items) != 2 {
		t.Errorf("fetched %d items, want both", len(view.Items))
	}
	if view.DefaultCategory() != "Starters" {
		t.Errorf("DefaultCategory = %q, want Starters", view.DefaultCategory())
	}
	if got := view.Select("Mains"); len(got) != 0 {
		t.Errorf("Select(Mains) = %d items, want none", len(got))
	}
	if got := view.Filter(menu.Filter{Status: menu.StatusFilters{Active: true}}); len(got) != 1 || got[0].Name != "Soup" {
		t.Errorf("active filter = %+v", got)
	}

	remote, err := f.client.ListMenuItems(context.Background(), url.Values{"pricePreset": {"premium"}})
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(remote) != 1 || remote[0].Name != "Steak" {
		t.Errorf("premium items = %+v", remote)
	}
}

func TestBulkOperations(t *testing.T) {
	f := newFixture(t)
	soup, steak := f.seedMenu(t)
	ctx := context.Background()

	n, err := f.client.BulkUpdate(ctx, f.admin, []uint{soup.ID, steak.ID, 999}, map[string]any{"seasonal": true})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if n != 2 {
		t.Errorf("BulkUpdate modified %d, want 2", n)
	}

	_, err = f.client.BulkUpdate(ctx, f.admin, []uint{soup.ID}, map[string]any{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Errorf("empty patch = %v, want 400", err)
	}

	if _, err := f.client.BulkUpdate(ctx, f.admin, nil, map[string]any{"active": true}); !errors.Is(err, ErrNoItems) {
		t.Errorf("BulkUpdate without ids = %v, want ErrNoItems", err)
	}

	before := f.requests.Load()
	asked := 0
	_, err = f.client.BulkDelete(ctx, f.admin, []uint{soup.ID, steak.ID}, func(n int) bool {
		asked = n
		return false
	})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("declined BulkDelete = %v, want ErrNotConfirmed", err)
	}
	if asked != 2 {
		t.Errorf("confirm saw %d items, want 2", asked)
	}
	if _, err := f.client.BulkDelete(ctx, f.admin, []uint{soup.ID}, nil); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("BulkDelete without confirm = %v, want ErrNotConfirmed", err)
	}
	if f.requests.Load() != before {
		t.Error("declined bulk delete reached the server")
	}

	deleted, err := f.client.BulkDelete(ctx, f.admin, []uint{soup.ID, 999}, func(int) bool { return true })
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d, want 1", deleted)
	}

	items, err := f.client.ListMenuItems(ctx, nil)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != steak.ID || !items[0].Seasonal {
		t.Errorf("remaining items = %+v", items)
	}
}

func TestToggleOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer := models.SpecialOffer{
		Title: "Happy Hour", Description: "Half price wine", Image: "/uploads/wine.png",
		ValidUntil: time.Now().AddDate(0, 1, 0), Type: models.OfferTypePromotion, Active: true,
	}
	if err := database.DB.Create(&offer).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}

	res, err := f.client.ToggleOffer(ctx, f.admin, offer.ID)
	if err != nil {
		t.Fatalf("ToggleOffer: %v", err)
	}
	if res.Active {
		t.Error("offer still active after toggle")
	}

	active, err := f.client.ListOffers(ctx, true)
	if err != nil {
		t.Fatalf("ListOffers: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active offers = %+v, want none", active)
	}

	_, err = f.client.ToggleOffer(ctx, f.admin, offer.ID+10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("toggle unknown = %v, want 404", err)
	}
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	content := []byte{0x89, 'P', 'N', 'G'}
	path, err := f.client.UploadImage(ctx, f.admin, "/tmp/photos/tarte.png", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") {
		t.Errorf("path = %q", path)
	}

	stored, err := os.ReadFile(filepath.Join(f.cfg.UploadDir, strings.TrimPrefix(path, "/uploads/")))
	if err != nil {
		t.Fatalf("read stored image: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored image differs")
	}

	_, err = f.client.UploadImage(ctx, f.admin, "notes.txt", strings.NewReader("hello"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Errorf("text upload = %v, want 400", err)
	}
}
