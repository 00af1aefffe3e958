package handler

import (
	"errors"
	"log"
	"math"
	"time"

	"ubudasa-ems-backend/config"
	"ubudasa-ems-backend/internal/mailer"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	repo repository.UserRepository
	mail *mailer.Mailer
}

func NewUserHandler(repo repository.UserRepository, mail *mailer.Mailer) *UserHandler {
	return &UserHandler{repo: repo, mail: mail}
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please provide phone number and password"})
	}

	user, err := h.repo.FindByPhone(req.Phone)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid phone number or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid phone number or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"site":    user.Site,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.GetEnv("JWT_SECRET", "ubudasa-dev-secret")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   signed,
		"data": fiber.Map{
			"name":  user.Name,
			"phone": user.Phone,
			"role":  user.Role,
			"site":  user.Site,
		},
	})
}

type RegisterManagerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
	Site     string `json:"site"`
}

// RegisterSiteManager creates a site-manager account (admin only). A
// non-empty site may hold at most one active manager.
func (h *UserHandler) RegisterSiteManager(c *fiber.Ctx) error {
	var req RegisterManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, phone and a password of at least 6 characters are required"})
	}

	if _, err := h.repo.FindByPhone(req.Phone); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User with this phone number already exists"})
	}

	if req.Site != "" {
		count, err := h.repo.CountActiveManagersBySite(req.Site)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check site assignment"})
		}
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This site already has an active site manager"})
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := model.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleSiteManager,
		Site:     req.Site,
		IsActive: true,
	}
	if err := h.repo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User with this phone number already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
	}

	if req.Email != "" && h.mail.Enabled() {
		if err := h.mail.SendWelcome(req.Email, req.Name, req.Phone, req.Password); err != nil {
			log.Printf("welcome mail to %s failed: %v", req.Email, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Site manager registered successfully",
		"data":    user,
	})
}

func (h *UserHandler) GetAllSiteManagers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	managers, total, err := h.repo.FindSiteManagers(c.Query("name"), c.Query("phone"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch site managers"})
	}

	return c.JSON(fiber.Map{
		"count": len(managers),
		"total": total,
		"page":  page,
		"pages": int(math.Ceil(float64(total) / float64(limit))),
		"data":  managers,
	})
}

type UpdateManagerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Site  string `json:"site"`
}

func (h *UserHandler) UpdateSiteManager(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req UpdateManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	if user.Role != model.RoleSiteManager {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only site managers can be updated"})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Site != "" {
		user.Site = req.Site
	}

	if err := h.repo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Phone number already in use"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Update failed"})
	}

	return c.JSON(fiber.Map{"message": "Site manager updated", "data": user})
}

func (h *UserHandler) DeleteSiteManager(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	if user.Role != model.RoleSiteManager {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only site managers can be deleted"})
	}

	if err := h.repo.Delete(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Deletion failed"})
	}

	return c.JSON(fiber.Map{"message": "Site manager deleted successfully"})
}
