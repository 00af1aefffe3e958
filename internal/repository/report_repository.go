package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	// Create relies on the (site_manager_id, date) unique index; a second
	// report for the same day comes back as gorm.ErrDuplicatedKey.
	Create(report *model.Report) error
	GetAll() ([]model.Report, error)
	GetByManagerAndDate(siteManagerID uint, date string) (*model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetAll() ([]model.Report, error) {
	var reports []model.Report
	err := r.db.Order("date desc, created_at desc").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) GetByManagerAndDate(siteManagerID uint, date string) (*model.Report, error) {
	var report model.Report
	err := r.db.Where("site_manager_id = ? AND date = ?", siteManagerID, date).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
