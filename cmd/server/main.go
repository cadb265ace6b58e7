package main

import (
	"log"

	"cordonbleu-backend/internal/config"
	"cordonbleu-backend/internal/database"
	"cordonbleu-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := server.New(cfg)

	log.Println("Server is running on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
