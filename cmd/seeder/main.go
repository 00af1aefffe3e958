package main

import (
	"log"

	"ubudasa-ems-backend/config"
	"ubudasa-ems-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	config.ConnectDB()

	if err := database.SeedAll(config.DB); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeding complete")
}
