package handler

import (
	"time"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PayrollHandler struct {
	repo    repository.PayrollRepository
	empRepo repository.EmployeeRepository
	attRepo repository.AttendanceRepository
}

func NewPayrollHandler(repo repository.PayrollRepository, empRepo repository.EmployeeRepository, attRepo repository.AttendanceRepository) *PayrollHandler {
	return &PayrollHandler{repo: repo, empRepo: empRepo, attRepo: attRepo}
}

type PayrollRow struct {
	EmployeeID  uint    `json:"employee_id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	DaysWorked  int     `json:"days_worked"`
	DailySalary float64 `json:"daily_salary"`
	TotalSalary float64 `json:"total_salary"`
}

// GetPayroll is the live preview: days worked and total owed per worker at
// the current day rate. Optional siteManagerId scopes the join to one
// manager's sheets; without it the join spans all sheets, which is only
// sensible for single-tenant deployments.
func (h *PayrollHandler) GetPayroll(c *fiber.Ctx) error {
	managerID := c.QueryInt("siteManagerId")

	employees, err := h.empRepo.GetAll("")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}

	var sheets []model.AttendanceSheet
	if managerID > 0 {
		sheets, err = h.attRepo.GetByFilter("", uint(managerID))
	} else {
		sheets, err = h.attRepo.GetAll()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	rows := buildPayrollRows(employees, sheets)
	return c.JSON(fiber.Map{"count": len(rows), "data": rows})
}

type CommitPayrollRequest struct {
	Month         string `json:"month" validate:"required"`
	CommitVersion string `json:"commit_version"`
}

// CommitPayroll persists one Payroll snapshot per worker for the given
// month. (month, commit_version) is the idempotency key: rows that already
// exist for it are skipped, so re-posting the same version is a no-op while
// a new version produces a fresh audit snapshot.
func (h *PayrollHandler) CommitPayroll(c *fiber.Ctx) error {
	var req CommitPayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month is required"})
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be in YYYY-MM format"})
	}
	version := req.CommitVersion
	if version == "" {
		version = "v1"
	}

	employees, err := h.empRepo.GetAll("")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}
	sheets, err := h.attRepo.GetByRange(req.Month+"-01", req.Month+"-31")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	rows := buildPayrollRows(employees, sheets)

	created := make([]model.Payroll, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		exists, err := h.repo.Exists(row.EmployeeID, req.Month, version)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check payroll records"})
		}
		if exists {
			skipped++
			continue
		}

		payroll := model.Payroll{
			EmployeeID:    row.EmployeeID,
			Period:        req.Month,
			CommitVersion: version,
			DaysWorked:    row.DaysWorked,
			TotalSalary:   row.TotalSalary,
			IsPaid:        true,
		}
		if err := h.repo.Create(&payroll); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payroll"})
		}
		created = append(created, payroll)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payroll committed",
		"period":  req.Month,
		"version": version,
		"skipped": skipped,
		"data":    created,
	})
}

func (h *PayrollHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.repo.GetHistory()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll history"})
	}
	return c.JSON(fiber.Map{"count": len(history), "data": history})
}

// buildPayrollRows joins workers against sheet entries, counting Present
// days and pricing them at the worker's current day rate.
func buildPayrollRows(employees []model.Employee, sheets []model.AttendanceSheet) []PayrollRow {
	days := make(map[uint]int)
	for _, sheet := range sheets {
		for _, entry := range sheet.Entries {
			if entry.Status == model.StatusPresent {
				days[entry.EmployeeID]++
			}
		}
	}

	rows := make([]PayrollRow, 0, len(employees))
	for _, emp := range employees {
		worked := days[emp.ID]
		rows = append(rows, PayrollRow{
			EmployeeID:  emp.ID,
			Name:        emp.Name,
			Phone:       emp.Phone,
			DaysWorked:  worked,
			DailySalary: emp.CurrentSalary,
			TotalSalary: emp.CurrentSalary * float64(worked),
		})
	}
	return rows
}
