package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPayrollRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewPayrollRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	hdl := handler.NewPayrollHandler(repo, empRepo, attRepo)

	api := app.Group("/api/payroll", middleware.Auth, middleware.Role(model.RoleAdmin))

	api.Get("/", hdl.GetPayroll)
	api.Post("/pay", hdl.CommitPayroll)
	api.Get("/history", hdl.GetHistory)
}
