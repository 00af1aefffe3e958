package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type PayrollRepository interface {
	Create(payroll *model.Payroll) error
	Exists(employeeID uint, period, version string) (bool, error)
	GetHistory() ([]model.Payroll, error)
}

type payrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db}
}

func (r *payrollRepository) Create(payroll *model.Payroll) error {
	return r.db.Create(payroll).Error
}

func (r *payrollRepository) Exists(employeeID uint, period, version string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payroll{}).
		Where("employee_id = ? AND period = ? AND commit_version = ?", employeeID, period, version).
		Count(&count).Error
	return count > 0, err
}

func (r *payrollRepository) GetHistory() ([]model.Payroll, error) {
	var history []model.Payroll
	err := r.db.Preload("Employee").
		Order("created_at desc").
		Find(&history).Error
	return history, err
}
