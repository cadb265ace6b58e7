package seed

import (
	"fmt"
	"log"
	"strconv"

	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRow struct {
	Name        string
	Description string
}

type ItemRow struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string // category name, resolved on import
}

type Result struct {
	Categories int
	Items      int
}

// ParseCategories expects the columns name and description.
func ParseCategories(rows [][]string) ([]CategoryRow, error) {
	t, err := newTable(rows, "name")
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	out := make([]CategoryRow, 0, len(t.rows))
	for i, row := range t.rows {
		name := t.get(row, "name")
		if name == "" {
			return nil, fmt.Errorf("categories row %d: name is empty", i+2)
		}
		out = append(out, CategoryRow{Name: name, Description: t.get(row, "description")})
	}
	return out, nil
}

// ParseItems expects the columns name, description, price, image and category.
func ParseItems(rows [][]string) ([]ItemRow, error) {
	t, err := newTable(rows, "name", "description", "price", "category")
	if err != nil {
		return nil, fmt.Errorf("menu items: %w", err)
	}

	out := make([]ItemRow, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		item := ItemRow{
			Name:        t.get(row, "name"),
			Description: t.get(row, "description"),
			Image:       t.get(row, "image"),
			Category:    t.get(row, "category"),
		}
		if item.Name == "" || item.Description == "" || item.Category == "" {
			return nil, fmt.Errorf("menu items row %d: name, description and category are required", line)
		}

		price, err := strconv.ParseFloat(t.get(row, "price"), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("menu items row %d: invalid price %q", line, t.get(row, "price"))
		}
		item.Price = price

		out = append(out, item)
	}
	return out, nil
}

// Clear removes all menu items and categories.
func Clear(tx *gorm.DB) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.MenuItem{}).Error; err != nil {
		return fmt.Errorf("clear menu items: %w", err)
	}
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	return nil
}

// Import creates the categories and then the items in one transaction. An item
// naming an unknown category aborts the whole import. Seeded items are active
// and carry no status flags.
func Import(categories []CategoryRow, items []ItemRow, clear bool) (Result, error) {
	var res Result

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if clear {
			if err := Clear(tx); err != nil {
				return err
			}
			log.Println("Cleared existing menu data")
		}

		byName := make(map[string]uint)
		var existing []models.Category
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		for _, cat := range existing {
			byName[cat.Name] = cat.ID
		}

		for _, row := range categories {
			cat := models.Category{Name: row.Name, Description: row.Description}
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("create category %q: %w", row.Name, err)
			}
			byName[cat.Name] = cat.ID
			res.Categories++
		}

		for _, row := range items {
			catID, ok := byName[row.Category]
			if !ok {
				return fmt.Errorf("category not found for menu item: %s", row.Name)
			}
			item := models.MenuItem{
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				Image:       row.Image,
				CategoryID:  catID,
				Active:      true,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create menu item %q: %w", row.Name, err)
			}
			res.Items++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
