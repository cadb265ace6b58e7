package main

import (
	"flag"
	"log"

	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/seed"
)

func main() {
	categoriesPath := flag.String("categories", "data/categories.csv", "categories file (.csv or .xlsx)")
	itemsPath := flag.String("items", "data/menu_items.csv", "menu items file (.csv or .xlsx)")
	clear := flag.Bool("clear", true, "delete existing menu items and categories first")
	clearOnly := flag.Bool("clear-only", false, "only delete existing menu items and categories")
	flag.Parse()

	cfg := config.Load()
	database.Init(cfg)

	if *clearOnly {
		if err := seed.Clear(database.DB); err != nil {
			log.Fatalf("Error clearing database: %v", err)
		}
		log.Println("Database collections cleared successfully")
		return
	}

	catRows, err := seed.ReadFile(*categoriesPath)
	if err != nil {
		log.Fatalf("read %s: %v", *categoriesPath, err)
	}
	categories, err := seed.ParseCategories(catRows)
	if err != nil {
		log.Fatalf("%s: %v", *categoriesPath, err)
	}

	itemRows, err := seed.ReadFile(*itemsPath)
	if err != nil {
		log.Fatalf("read %s: %v", *itemsPath, err)
	}
	items, err := seed.ParseItems(itemRows)
	if err != nil {
		log.Fatalf("%s: %v", *itemsPath, err)
	}

	res, err := seed.Import(categories, items, *clear)
	if err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}
	log.Printf("Seeding completed successfully: %d categories, %d menu items", res.Categories, res.Items)
}
