package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewDashboardRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	hdl := handler.NewDashboardHandler(repo, attRepo)

	api := app.Group("/api/dashboard", middleware.Auth)

	api.Get("/admin", middleware.Role(model.RoleAdmin), hdl.Admin)
	api.Get("/manager", middleware.Role(model.RoleSiteManager), hdl.Manager)
}
