package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewAttendanceRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	hdl := handler.NewAttendanceHandler(repo, empRepo, reportRepo)

	api := app.Group("/api/attendance", middleware.Auth)

	// Site-manager actions
	api.Post("/finalize", middleware.Role(model.RoleSiteManager), hdl.Finalize)
	api.Get("/today", middleware.Role(model.RoleSiteManager), hdl.GetToday)
	api.Put("/:sheetId/entries/:employeeId/pay", middleware.Role(model.RoleSiteManager, model.RoleAdmin), hdl.MarkEntryPaid)

	// Queries
	api.Get("/", hdl.GetAll)
	api.Get("/combined", hdl.GetCombined)
	api.Get("/filter", hdl.GetByFilter)
	api.Get("/date/:date", hdl.GetByDate)
	api.Get("/employee/:employeeId", hdl.GetByEmployee)
}
