package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewPaymentRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	hdl := handler.NewPaymentHandler(repo, attRepo)

	api := app.Group("/api/payments", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSiteManager))

	api.Get("/unpaid", hdl.GetUnpaid)
	api.Post("/pay", hdl.MarkManyPaid)
	api.Get("/history", hdl.GetHistory)
}
