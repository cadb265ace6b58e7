package menu

import (
	"net/http"
	"testing"
)

func TestBulkUpdateIgnoresUnknownIDs(t *testing.T) {
	setupDB(t)
	app := newTestApp()

	cat := createCategory(t, "Mains")
	a := createItem(t, "Steak", 32, cat.ID, true)
	b := createItem(t, "Coq au Vin", 24, cat.ID, true)
	untouched := createItem(t, "Ratatouille", 18, cat.ID, true)

	status, body := doRequest(t, app, http.MethodPut, "/menu-items/bulk-update", BulkUpdateRequest{
		ItemIDs: []uint{a.ID, b.ID, 9999},
		Updates: map[string]any{"active": false, "featured": true},
	})
	mustStatus(t, status, http.StatusOK, body)

	res := decode[BulkUpdateResponse](t, body)
	if res.ModifiedCount != 2 {
		t.Errorf("modifiedCount = %d, want 2", res.ModifiedCount)
	}
	if res.Message != "Successfully updated 2 items." {
		t.Errorf("message = %q", res.Message)
	}

	for _, id := range []uint{a.ID, b.ID} {
		item, _ := reloadItem(t, id)
		if item.Active || !item.Featured {
			t.Errorf("item %d not patched: active=%v featured=%v", id, item.Active, item.Featured)
		}
	}
	item, _ := reloadItem(t, untouched.ID)
	if !item.Active || item.Featured {
		t.Errorf("item outside the selection was modified: %+v", item)
	}
}

func TestBulkUpdateChangesPriceAndCategory(t *testing.T) {
	setupDB(t)
	app := newTestApp()

	starters := createCategory(t, "Starters")
	specials := createCategory(t, "Specials")
	a := createItem(t, "Soup", 9, starters.ID, true)

	status, body := doRequest(t, app, http.MethodPut, "/menu-items/bulk-update", BulkUpdateRequest{
		ItemIDs: []uint{a.ID},
		Updates: map[string]any{"price": 11.5, "category": specials.ID},
	})
	mustStatus(t, status, http.StatusOK, body)

	item, _ := reloadItem(t, a.ID)
	if item.Price != 11.5 || item.CategoryID != specials.ID {
		t.Errorf("price=%v category=%d, want 11.5 and %d", item.Price, item.CategoryID, specials.ID)
	}
}

func TestBulkUpdateRejectsBadRequests(t *testing.T) {
	setupDB(t)
	app := newTestApp()

	cat := createCategory(t, "Mains")
	a := createItem(t, "Steak", 32, cat.ID, true)

	tests := []struct {
		name string
		body any
	}{
		{"no ids", BulkUpdateRequest{ItemIDs: []uint{}, Updates: map[string]any{"active": false}}},
		{"no updates", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{}}},
		{"missing updates", map[string]any{"itemIds": []uint{a.ID}}},
		{"unknown field", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{"chef": "Paul"}}},
		{"wrong type", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{"active": "yes"}}},
		{"negative price", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{"price": -1}}},
		{"empty name", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{"name": "  "}}},
		{"unknown category", BulkUpdateRequest{ItemIDs: []uint{a.ID}, Updates: map[string]any{"category": 404}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodPut, "/menu-items/bulk-update", tt.body)
			mustStatus(t, status, http.StatusBadRequest, body)
		})
	}

	item, _ := reloadItem(t, a.ID)
	if !item.Active || item.Price != 32 || item.CategoryID != cat.ID {
		t.Errorf("rejected requests changed the item: %+v", item)
	}
}

func TestBulkDeleteCountsOnlyExistingItems(t *testing.T) {
	setupDB(t)
	app := newTestApp()

	cat := createCategory(t, "Desserts")
	a := createItem(t, "Tart", 8, cat.ID, true)
	b := createItem(t, "Mousse", 7, cat.ID, true)
	c := createItem(t, "Sorbet", 6, cat.ID, false)

	status, body := doRequest(t, app, http.MethodPost, "/menu-items/bulk-delete", BulkDeleteRequest{
		ItemIDs: []uint{a.ID, c.ID, 4242},
	})
	mustStatus(t, status, http.StatusOK, body)

	res := decode[BulkDeleteResponse](t, body)
	if res.DeletedCount != 2 {
		t.Errorf("deletedCount = %d, want 2", res.DeletedCount)
	}

	for _, id := range []uint{a.ID, c.ID} {
		if _, found := reloadItem(t, id); found {
			t.Errorf("item %d still exists", id)
		}
	}
	if _, found := reloadItem(t, b.ID); !found {
		t.Error("item outside the selection was deleted")
	}
}

func TestBulkDeleteRequiresIDs(t *testing.T) {
	setupDB(t)
	app := newTestApp()

	for _, body := range []any{BulkDeleteRequest{}, map[string]any{"itemIds": []uint{}}} {
		status, data := doRequest(t, app, http.MethodPost, "/menu-items/bulk-delete", body)
		mustStatus(t, status, http.StatusBadRequest, data)
	}
}
