package handler

import (
	"errors"
	"log"
	"time"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	repo    repository.PaymentRepository
	attRepo repository.AttendanceRepository
}

func NewPaymentHandler(repo repository.PaymentRepository, attRepo repository.AttendanceRepository) *PaymentHandler {
	return &PaymentHandler{repo: repo, attRepo: attRepo}
}

// WageItem is one flattened wage line across sheets.
type WageItem struct {
	EmployeeID   uint       `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Date         string     `json:"date"`
	DayRate      float64    `json:"day_rate"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

// GetUnpaid lists UNPAID entries from the manager's sheets with date in
// [start, end], both days inclusive.
func (h *PaymentHandler) GetUnpaid(c *fiber.Ctx) error {
	managerID := c.QueryInt("siteManagerId")
	if managerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "siteManagerId is required"})
	}
	start, end, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sheets, err := h.attRepo.GetByManagerAndRange(uint(managerID), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unpaid wages"})
	}

	items := make([]WageItem, 0)
	for _, sheet := range sheets {
		for _, entry := range sheet.Entries {
			if entry.PaymentStatus != model.PaymentUnpaid {
				continue
			}
			items = append(items, WageItem{
				EmployeeID:   entry.EmployeeID,
				EmployeeName: entry.Employee.Name,
				Date:         sheet.Date,
				DayRate:      entry.Salary,
			})
		}
	}

	return c.JSON(fiber.Map{"count": len(items), "data": items})
}

type PayItem struct {
	EmployeeID    uint   `json:"employee_id" validate:"required"`
	SiteManagerID uint   `json:"site_manager_id" validate:"required"`
	Date          string `json:"date" validate:"required"`
}

const (
	OutcomePaid    = "PAID"
	OutcomeSkipped = "SKIPPED"
	OutcomeFailed  = "FAILED"
)

// PayOutcome tags each batch item with what happened to it, so callers can
// assert on partial results instead of digging through logs.
type PayOutcome struct {
	Item    PayItem `json:"item"`
	Outcome string  `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

type MarkManyPaidRequest struct {
	Payments []PayItem `json:"payments" validate:"required,min=1,dive"`
}

// MarkManyPaid settles a batch of wage lines. Best-effort by design: items
// that cannot be resolved are skipped or failed individually and never abort
// the batch. Each successful item flips the sheet entry to PAID and appends
// one Payment receipt unless one already exists for that (worker, manager,
// day).
func (h *PaymentHandler) MarkManyPaid(c *fiber.Ctx) error {
	var req MarkManyPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payments must be a non-empty list of {employee_id, site_manager_id, date}"})
	}

	created := make([]model.Payment, 0)
	outcomes := make([]PayOutcome, 0, len(req.Payments))

	for _, item := range req.Payments {
		outcomes = append(outcomes, h.payOne(item, &created))
	}

	return c.JSON(fiber.Map{
		"message":  "Payment batch processed",
		"payments": created,
		"results":  outcomes,
	})
}

func (h *PaymentHandler) payOne(item PayItem, created *[]model.Payment) PayOutcome {
	date, err := normalizeDay(item.Date)
	if err != nil {
		return PayOutcome{Item: item, Outcome: OutcomeFailed, Reason: err.Error()}
	}

	sheet, err := h.attRepo.GetByManagerAndDate(item.SiteManagerID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("payment batch: no sheet for manager %d on %s, skipping", item.SiteManagerID, date)
		return PayOutcome{Item: item, Outcome: OutcomeSkipped, Reason: "no attendance sheet for that day"}
	}
	if err != nil {
		return PayOutcome{Item: item, Outcome: OutcomeFailed, Reason: "failed to fetch attendance sheet"}
	}

	var entry *model.AttendedEmployee
	for i := range sheet.Entries {
		if sheet.Entries[i].EmployeeID == item.EmployeeID {
			entry = &sheet.Entries[i]
			break
		}
	}
	if entry == nil {
		return PayOutcome{Item: item, Outcome: OutcomeSkipped, Reason: "worker is not on that day's sheet"}
	}

	if entry.PaymentStatus == model.PaymentPaid {
		return PayOutcome{Item: item, Outcome: OutcomeSkipped, Reason: "already paid"}
	}

	now := time.Now().UTC()
	entry.PaymentStatus = model.PaymentPaid
	entry.PaidAt = &now
	if err := h.attRepo.UpdateEntry(entry); err != nil {
		return PayOutcome{Item: item, Outcome: OutcomeFailed, Reason: "failed to update sheet entry"}
	}

	exists, err := h.repo.Exists(item.EmployeeID, item.SiteManagerID, date)
	if err != nil {
		return PayOutcome{Item: item, Outcome: OutcomeFailed, Reason: "failed to check payment record"}
	}
	if !exists {
		payment := model.Payment{
			EmployeeID:    item.EmployeeID,
			SiteManagerID: item.SiteManagerID,
			Date:          date,
			Amount:        entry.Salary,
			Status:        "paid",
		}
		if err := h.repo.Create(&payment); err != nil {
			return PayOutcome{Item: item, Outcome: OutcomeFailed, Reason: "failed to create payment record"}
		}
		*created = append(*created, payment)
	}

	return PayOutcome{Item: item, Outcome: OutcomePaid}
}

// GetHistory returns paid wages for a manager over a range. The Payment
// store is the source of truth; when it has no rows in range (data predating
// the receipts table), history is derived from PAID sheet entries instead.
func (h *PaymentHandler) GetHistory(c *fiber.Ctx) error {
	managerID := c.QueryInt("siteManagerId")
	if managerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "siteManagerId is required"})
	}
	start, end, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payments, err := h.repo.GetByManagerAndRange(uint(managerID), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payment history"})
	}

	items := make([]WageItem, 0, len(payments))
	for _, p := range payments {
		paidAt := p.CreatedAt
		items = append(items, WageItem{
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.Employee.Name,
			Date:         p.Date,
			DayRate:      p.Amount,
			PaidAt:       &paidAt,
		})
	}

	if len(items) == 0 {
		sheets, err := h.attRepo.GetByManagerAndRange(uint(managerID), start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payment history"})
		}
		for _, sheet := range sheets {
			for _, entry := range sheet.Entries {
				if entry.PaymentStatus != model.PaymentPaid {
					continue
				}
				items = append(items, WageItem{
					EmployeeID:   entry.EmployeeID,
					EmployeeName: entry.Employee.Name,
					Date:         sheet.Date,
					DayRate:      entry.Salary,
					PaidAt:       entry.PaidAt,
				})
			}
		}
	}

	return c.JSON(fiber.Map{"count": len(items), "data": items})
}

func parseRange(c *fiber.Ctx) (string, string, error) {
	start, err := normalizeDay(c.Query("start"))
	if err != nil {
		return "", "", errors.New("start is required in YYYY-MM-DD format")
	}
	end, err := normalizeDay(c.Query("end"))
	if err != nil {
		return "", "", errors.New("end is required in YYYY-MM-DD format")
	}
	if end < start {
		return "", "", errors.New("end must not be before start")
	}
	return start, end, nil
}
