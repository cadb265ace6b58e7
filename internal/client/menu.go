package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"cordonbleu-backend/internal/menu"
	"cordonbleu-backend/internal/offers"
)

// MenuView is the public menu as the website renders it: the fetched items
// plus the category tabs derived from the active ones.
type MenuView struct {
	Items      []menu.ItemResponse
	Categories []menu.CategoryResponse
}

func NewMenuView(items []menu.ItemResponse) *MenuView {
	return &MenuView{
		Items:      items,
		Categories: menu.PublicCategories(items),
	}
}

// DefaultCategory is the first tab, or "" when no active item has a category.
func (v *MenuView) DefaultCategory() string {
	if len(v.Categories) == 0 {
		return ""
	}
	return v.Categories[0].Name
}

// Select returns the active items of the named category.
func (v *MenuView) Select(name string) []menu.ItemResponse {
	return menu.PublicByCategory(v.Items, name)
}

func (v *MenuView) Filter(f menu.Filter) []menu.ItemResponse {
	return menu.Apply(v.Items, f)
}

func (c *Client) ListCategories(ctx context.Context) ([]menu.CategoryResponse, error) {
	var out []menu.CategoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMenuItems returns every item; q may carry server-side filter parameters.
func (c *Client) ListMenuItems(ctx context.Context, q url.Values) ([]menu.ItemResponse, error) {
	var out []menu.ItemResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/api/menu-items", q), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchMenu loads all items and derives the public view locally.
func (c *Client) FetchMenu(ctx context.Context) (*MenuView, error) {
	items, err := c.ListMenuItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewMenuView(items), nil
}

func (c *Client) ListOffers(ctx context.Context, activeOnly bool) ([]offers.OfferResponse, error) {
	q := url.Values{}
	if activeOnly {
		q.Set("active", "true")
	}
	var out []offers.OfferResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/api/special-offers", q), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func itemPath(id uint) string {
	return "/api/menu-items/" + strconv.FormatUint(uint64(id), 10)
}
