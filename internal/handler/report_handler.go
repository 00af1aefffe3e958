package handler

import (
	"errors"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportHandler struct {
	repo repository.ReportRepository
}

func NewReportHandler(repo repository.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

type CreateReportRequest struct {
	Date           string `json:"date" validate:"required"`
	ActivitiesDone string `json:"activities_done" validate:"required"`
	NextDayPlan    string `json:"next_day_plan" validate:"required"`
	Comments       string `json:"comments"`
}

// Create stores the daily activity report. One per manager per day; the
// unique index turns a second submit into a 409.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date, activities_done and next_day_plan are required"})
	}
	date, err := normalizeDay(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report := model.Report{
		SiteManagerID:  currentUserID(c),
		Date:           date,
		ActivitiesDone: req.ActivitiesDone,
		NextDayPlan:    req.NextDayPlan,
		Comments:       req.Comments,
	}
	if err := h.repo.Create(&report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Report for this day already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create report"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Report created", "data": report})
}

func (h *ReportHandler) GetAll(c *fiber.Ctx) error {
	reports, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(fiber.Map{"count": len(reports), "data": reports})
}

func (h *ReportHandler) GetByDay(c *fiber.Ctx) error {
	managerID := c.QueryInt("siteManagerId")
	rawDate := c.Query("date")
	if managerID <= 0 || rawDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "siteManagerId and date are required"})
	}
	date, err := normalizeDay(rawDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.repo.GetByManagerAndDate(uint(managerID), date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch report"})
	}
	return c.JSON(fiber.Map{"data": report})
}
