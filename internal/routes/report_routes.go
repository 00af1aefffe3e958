package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewReportRepository(db)
	hdl := handler.NewReportHandler(repo)

	api := app.Group("/api/reports", middleware.Auth)

	api.Post("/", middleware.Role(model.RoleSiteManager), hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/day", hdl.GetByDay)
}
