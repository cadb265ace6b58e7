package menu

import (
	"time"

	"cordonbleu-backend/internal/models"

	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ItemResponse struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        float64           `json:"price"`
	DisplayPrice string            `json:"displayPrice"`
	Image        string            `json:"image,omitempty"`
	CategoryID   uint              `json:"categoryId"`
	Category     *CategoryResponse `json:"category"`
	Active       bool              `json:"active"`
	Featured     bool              `json:"featured"`
	Seasonal     bool              `json:"seasonal"`
	SpecialOffer bool              `json:"specialOffer"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// FormatPrice renders a stored price as a two-decimal currency string.
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

func toCategoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
	}
}

func toItemResponse(it *models.MenuItem) ItemResponse {
	res := ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Description:  it.Description,
		Price:        it.Price,
		DisplayPrice: FormatPrice(it.Price),
		Image:        it.Image,
		CategoryID:   it.CategoryID,
		Active:       it.Active,
		Featured:     it.Featured,
		Seasonal:     it.Seasonal,
		SpecialOffer: it.SpecialOffer,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
	// a dangling reference preloads as nil and is reported as uncategorized
	if it.Category != nil && it.Category.ID != 0 {
		cat := toCategoryResponse(it.Category)
		res.Category = &cat
	}
	return res
}

func toItemResponses(items []models.MenuItem) []ItemResponse {
	res := make([]ItemResponse, 0, len(items))
	for i := range items {
		res = append(res, toItemResponse(&items[i]))
	}
	return res
}
