package routes

import (
	"ubudasa-ems-backend/internal/handler"
	"ubudasa-ems-backend/internal/mailer"
	"ubudasa-ems-backend/internal/middleware"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewUserHandler(repo, mailer.New())

	app.Post("/api/users/login", hdl.Login)

	// Admin: site-manager account management
	admin := app.Group("/api/users/admin", middleware.Auth, middleware.Role(model.RoleAdmin))
	admin.Post("/site-managers", hdl.RegisterSiteManager)
	admin.Get("/site-managers", hdl.GetAllSiteManagers)
	admin.Put("/site-managers/:id", hdl.UpdateSiteManager)
	admin.Delete("/site-managers/:id", hdl.DeleteSiteManager)
}
