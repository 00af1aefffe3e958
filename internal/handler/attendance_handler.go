package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ubudasa-ems-backend/config"
	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceHandler struct {
	repo       repository.AttendanceRepository
	empRepo    repository.EmployeeRepository
	reportRepo repository.ReportRepository
}

func NewAttendanceHandler(repo repository.AttendanceRepository, empRepo repository.EmployeeRepository, reportRepo repository.ReportRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, empRepo: empRepo, reportRepo: reportRepo}
}

// FinalizeEntry is one roster line in the finalize payload: either an
// existing worker id, or a (name, phone, salary_today) triple that resolves
// to a worker, creating one on first sight.
type FinalizeEntry struct {
	EmployeeID  uint    `json:"employee_id"`
	Name        string  `json:"name" validate:"required_without=EmployeeID"`
	Phone       string  `json:"phone" validate:"required_without=EmployeeID"`
	SalaryToday float64 `json:"salary_today" validate:"required_without=EmployeeID"`
	Status      string  `json:"status" validate:"omitempty,oneof=Present Absent"`
}

// Finalize records one day's roster for the calling site manager.
// Multipart form: "employees" (JSON array), "date", "groupImage" (file).
// Policy on a second finalize for the same day: reject with 409. The looser
// append-to-existing-sheet variant was considered and rejected, see DESIGN.md.
func (h *AttendanceHandler) Finalize(c *fiber.Ctx) error {
	managerID := currentUserID(c)
	site := currentSite(c)

	rawDate := c.FormValue("date")
	if rawDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date is required"})
	}
	date, err := normalizeDay(rawDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rawEmployees := c.FormValue("employees")
	if rawEmployees == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Employees data and group image are required"})
	}
	var entries []FinalizeEntry
	if err := json.Unmarshal([]byte(rawEmployees), &entries); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employees JSON format"})
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "At least one employee is required"})
	}
	for _, e := range entries {
		if err := validate.Struct(e); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Each employee must have an id or phone, name and salary_today"})
		}
	}

	file, err := c.FormFile("groupImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Group image is required"})
	}
	if !isImage(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only image files (jpg, jpeg, png, gif) are allowed"})
	}

	// Cheap pre-check so we do not create workers for a day that is already
	// finalized. The unique index still decides the race below.
	if _, err := h.repo.GetByManagerAndDate(managerID, date); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attendance for this day is already finalized"})
	}

	// Resolve workers: by id, else by phone, creating on first sight.
	attended := make([]model.AttendedEmployee, 0, len(entries))
	for _, e := range entries {
		var emp *model.Employee

		rate := e.SalaryToday
		if e.EmployeeID != 0 {
			emp, err = h.empRepo.FindByID(e.EmployeeID)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found: " + strconv.Itoa(int(e.EmployeeID))})
			}
			// An id-only line omits salary_today; the worker's current rate
			// is the wage agreed for that day.
			if rate == 0 {
				rate = emp.CurrentSalary
			}
		} else {
			emp, err = h.empRepo.FindByPhone(e.Phone, site)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				emp = &model.Employee{
					Name:          e.Name,
					Phone:         e.Phone,
					Site:          site,
					CurrentSalary: e.SalaryToday,
					CreatedByID:   managerID,
				}
				if err = h.empRepo.Create(emp); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
				}
			} else if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up employee"})
			}
		}

		status := e.Status
		if status == "" {
			status = model.StatusPresent
		}
		attended = append(attended, model.AttendedEmployee{
			EmployeeID:    emp.ID,
			Salary:        rate,
			Status:        status,
			PaymentStatus: model.PaymentUnpaid,
		})
	}

	photoPath, err := saveGroupPhoto(c, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store group image"})
	}

	sheet := model.AttendanceSheet{
		SiteManagerID: managerID,
		Date:          date,
		GroupPhoto:    photoPath,
		Entries:       attended,
	}

	if err := h.repo.Create(&sheet); err != nil {
		// The photo is on disk already; do not orphan it when the insert loses.
		os.Remove(photoPath)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attendance for this day is already finalized"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize attendance"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Attendance finalized successfully",
		"attendance": sheet,
	})
}

func (h *AttendanceHandler) GetAll(c *fiber.Ctx) error {
	sheets, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}
	return c.JSON(fiber.Map{"count": len(sheets), "data": sheets})
}

func (h *AttendanceHandler) GetByDate(c *fiber.Ctx) error {
	date, err := normalizeDay(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sheets, err := h.repo.GetByDate(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance by date"})
	}
	return c.JSON(fiber.Map{"count": len(sheets), "data": sheets})
}

func (h *AttendanceHandler) GetByEmployee(c *fiber.Ctx) error {
	employeeID, err := c.ParamsInt("employeeId")
	if err != nil || employeeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	sheets, err := h.repo.GetByEmployee(uint(employeeID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance by employee"})
	}
	return c.JSON(fiber.Map{"count": len(sheets), "data": sheets})
}

func (h *AttendanceHandler) GetByFilter(c *fiber.Ctx) error {
	date := ""
	if raw := c.Query("date"); raw != "" {
		normalized, err := normalizeDay(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		date = normalized
	}
	managerID := c.QueryInt("siteManagerId")

	sheets, err := h.repo.GetByFilter(date, uint(managerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(fiber.Map{"count": len(sheets), "data": sheets})
}

// GetToday returns the calling manager's sheet for the current day, if any.
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	managerID := currentUserID(c)

	sheet, err := h.repo.GetByManagerAndDate(managerID, today())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"finalized": false, "data": nil})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch today's attendance"})
	}
	return c.JSON(fiber.Map{"finalized": true, "data": sheet})
}

// MarkEntryPaid flips one worker line on a sheet to PAID. Re-marking a paid
// entry is a no-op success.
func (h *AttendanceHandler) MarkEntryPaid(c *fiber.Ctx) error {
	sheetID, err := c.ParamsInt("sheetId")
	if err != nil || sheetID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sheet id"})
	}
	employeeID, err := c.ParamsInt("employeeId")
	if err != nil || employeeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	sheet, err := h.repo.FindByID(uint(sheetID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attendance sheet not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance sheet"})
	}

	var entry *model.AttendedEmployee
	for i := range sheet.Entries {
		if sheet.Entries[i].EmployeeID == uint(employeeID) {
			entry = &sheet.Entries[i]
			break
		}
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found on this sheet"})
	}

	if entry.PaymentStatus == model.PaymentPaid {
		return c.JSON(fiber.Map{"message": "Entry already paid", "entry": entry})
	}

	now := time.Now().UTC()
	entry.PaymentStatus = model.PaymentPaid
	entry.PaidAt = &now
	if err := h.repo.UpdateEntry(entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
	}

	return c.JSON(fiber.Map{"message": "Entry marked as paid", "entry": entry})
}

// GetCombined returns both the attendance sheet and the daily report for one
// manager and day; either half may be null.
func (h *AttendanceHandler) GetCombined(c *fiber.Ctx) error {
	managerID := c.QueryInt("siteManagerId")
	rawDate := c.Query("date")
	if managerID <= 0 || rawDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "siteManagerId and date are required"})
	}
	date, err := normalizeDay(rawDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var attendance *model.AttendanceSheet
	if sheet, err := h.repo.GetByManagerAndDate(uint(managerID), date); err == nil {
		attendance = sheet
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch combined data"})
	}

	var report *model.Report
	if rep, err := h.reportRepo.GetByManagerAndDate(uint(managerID), date); err == nil {
		report = rep
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch combined data"})
	}

	return c.JSON(fiber.Map{"attendance": attendance, "report": report})
}

func isImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// saveGroupPhoto stores the uploaded image under UPLOAD_DIR with a uuid name
// and returns the stored path used as the sheet's photo reference.
func saveGroupPhoto(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	uploadDir := config.GetEnv("UPLOAD_DIR", "./uploads/group_photos")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(uploadDir, filename)
	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
