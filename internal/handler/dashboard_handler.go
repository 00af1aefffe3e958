package handler

import (
	"errors"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	repo    repository.DashboardRepository
	attRepo repository.AttendanceRepository
}

func NewDashboardHandler(repo repository.DashboardRepository, attRepo repository.AttendanceRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo, attRepo: attRepo}
}

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	managers, err := h.repo.CountManagers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	employees, err := h.repo.CountEmployees()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	sheets, err := h.repo.CountSheets()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}
	sheetsToday, err := h.repo.CountSheetsByDate(today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(fiber.Map{
		"site_managers": managers,
		"employees":     employees,
		"sheets":        sheets,
		"sheets_today":  sheetsToday,
	})
}

// Manager summarizes the caller's day: whether today's sheet is in and how
// many wage lines are still unpaid on it.
func (h *DashboardHandler) Manager(c *fiber.Ctx) error {
	managerID := currentUserID(c)

	sheet, err := h.attRepo.GetByManagerAndDate(managerID, today())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"finalized_today": false, "unpaid_today": 0})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	unpaid := 0
	for _, entry := range sheet.Entries {
		if entry.PaymentStatus == model.PaymentUnpaid {
			unpaid++
		}
	}

	return c.JSON(fiber.Map{
		"finalized_today": true,
		"unpaid_today":    unpaid,
		"workers_today":   len(sheet.Entries),
	})
}
