package main

import (
	"log"

	"ubudasa-ems-backend/config"
	"ubudasa-ems-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	config.ConnectDB()
	db := config.DB

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New())
	app.Use(logger.New())

	app.Static("/uploads", "./uploads")

	routes.SetupUserRoutes(app, db)
	routes.SetupEmployeeRoutes(app, db)
	routes.SetupAttendanceRoutes(app, db)
	routes.SetupPaymentRoutes(app, db)
	routes.SetupPayrollRoutes(app, db)
	routes.SetupReportRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)

	port := config.GetEnv("PORT", "5000")
	log.Printf("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
