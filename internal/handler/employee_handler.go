package handler

import (
	"errors"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewEmployeeHandler(repo repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

type CheckEmployeeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// CheckByPhone lets the attendance form pre-fill name and rate for a phone
// number the manager has reported before.
func (h *EmployeeHandler) CheckByPhone(c *fiber.Ctx) error {
	var req CheckEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Phone number is required"})
	}

	emp, err := h.repo.FindByPhone(req.Phone, currentSite(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"exists": false})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check employee"})
	}

	return c.JSON(fiber.Map{
		"exists": true,
		"name":   emp.Name,
		"salary": emp.CurrentSalary,
	})
}

type CreateEmployeeRequest struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	CurrentSalary float64 `json:"current_salary" validate:"required,gt=0"`
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, phone and a positive current_salary are required"})
	}

	site := currentSite(c)
	if existing, err := h.repo.FindByPhone(req.Phone, site); err == nil {
		return c.JSON(fiber.Map{"message": "Employee already exists", "data": existing})
	}

	emp := model.Employee{
		Name:          req.Name,
		Phone:         req.Phone,
		Site:          site,
		CurrentSalary: req.CurrentSalary,
		CreatedByID:   currentUserID(c),
	}
	if err := h.repo.Create(&emp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee with this phone number already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Employee registered successfully", "data": emp})
}

func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	emps, err := h.repo.GetAll(currentSite(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}
	return c.JSON(fiber.Map{"count": len(emps), "data": emps})
}

func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	emp, err := h.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}
	return c.JSON(fiber.Map{"data": emp})
}

type UpdateEmployeeRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	CurrentSalary *float64 `json:"current_salary"`
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	emp, err := h.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}

	if req.Name != "" {
		emp.Name = req.Name
	}
	if req.Phone != "" {
		emp.Phone = req.Phone
	}
	if req.CurrentSalary != nil {
		emp.CurrentSalary = *req.CurrentSalary
	}

	if err := h.repo.Update(emp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee with this phone number already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update employee"})
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": emp})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee id"})
	}

	emp, err := h.repo.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employee"})
	}

	if err := h.repo.Delete(emp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete employee"})
	}
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
