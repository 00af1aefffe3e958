package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	CountManagers() (int64, error)
	CountEmployees() (int64, error)
	CountSheets() (int64, error)
	CountSheetsByDate(date string) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) CountManagers() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", model.RoleSiteManager).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountSheets() (int64, error) {
	var count int64
	err := r.db.Model(&model.AttendanceSheet{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountSheetsByDate(date string) (int64, error) {
	var count int64
	err := r.db.Model(&model.AttendanceSheet{}).Where("date = ?", date).Count(&count).Error
	return count, err
}
