package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	Exists(employeeID, siteManagerID uint, date string) (bool, error)
	GetByManagerAndRange(siteManagerID uint, start, end string) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) Exists(employeeID, siteManagerID uint, date string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).
		Where("employee_id = ? AND site_manager_id = ? AND date = ?", employeeID, siteManagerID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *paymentRepository) GetByManagerAndRange(siteManagerID uint, start, end string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Employee").
		Where("site_manager_id = ? AND date >= ? AND date <= ?", siteManagerID, start, end).
		Order("date desc, created_at desc").
		Find(&payments).Error
	return payments, err
}
