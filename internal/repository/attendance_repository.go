package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	// Create inserts a sheet with its entries. The (site_manager_id, date)
	// unique index makes this the conditioned insert that resolves duplicate
	// finalize races; callers get gorm.ErrDuplicatedKey on the losing side.
	Create(sheet *model.AttendanceSheet) error
	FindByID(id uint) (*model.AttendanceSheet, error)
	GetAll() ([]model.AttendanceSheet, error)
	GetByDate(date string) ([]model.AttendanceSheet, error)
	GetByEmployee(employeeID uint) ([]model.AttendanceSheet, error)
	GetByFilter(date string, siteManagerID uint) ([]model.AttendanceSheet, error)
	GetByManagerAndDate(siteManagerID uint, date string) (*model.AttendanceSheet, error)
	GetByManagerAndRange(siteManagerID uint, start, end string) ([]model.AttendanceSheet, error)
	GetByRange(start, end string) ([]model.AttendanceSheet, error)
	UpdateEntry(entry *model.AttendedEmployee) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) preload() *gorm.DB {
	return r.db.Preload("Entries").Preload("Entries.Employee").Preload("SiteManager")
}

func (r *attendanceRepository) Create(sheet *model.AttendanceSheet) error {
	return r.db.Create(sheet).Error
}

func (r *attendanceRepository) FindByID(id uint) (*model.AttendanceSheet, error) {
	var sheet model.AttendanceSheet
	err := r.preload().First(&sheet, id).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *attendanceRepository) GetAll() ([]model.AttendanceSheet, error) {
	var sheets []model.AttendanceSheet
	err := r.preload().
		Order("date desc, created_at desc").
		Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) GetByDate(date string) ([]model.AttendanceSheet, error) {
	var sheets []model.AttendanceSheet
	err := r.preload().
		Where("date = ?", date).
		Order("created_at desc").
		Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) GetByEmployee(employeeID uint) ([]model.AttendanceSheet, error) {
	var sheets []model.AttendanceSheet
	err := r.preload().
		Joins("JOIN attended_employees ON attended_employees.attendance_sheet_id = attendance_sheets.id").
		Where("attended_employees.employee_id = ?", employeeID).
		Distinct("attendance_sheets.*").
		Order("attendance_sheets.date desc, attendance_sheets.created_at desc").
		Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) GetByFilter(date string, siteManagerID uint) ([]model.AttendanceSheet, error) {
	query := r.preload()
	if date != "" {
		query = query.Where("date = ?", date)
	}
	if siteManagerID != 0 {
		query = query.Where("site_manager_id = ?", siteManagerID)
	}

	var sheets []model.AttendanceSheet
	err := query.Order("date desc, created_at desc").Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) GetByManagerAndDate(siteManagerID uint, date string) (*model.AttendanceSheet, error) {
	var sheet model.AttendanceSheet
	err := r.preload().
		Where("site_manager_id = ? AND date = ?", siteManagerID, date).
		First(&sheet).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// GetByManagerAndRange returns the manager's sheets with date in [start, end],
// both ends inclusive. Dates are canonical YYYY-MM-DD keys so lexical
// comparison is date comparison.
func (r *attendanceRepository) GetByManagerAndRange(siteManagerID uint, start, end string) ([]model.AttendanceSheet, error) {
	var sheets []model.AttendanceSheet
	err := r.preload().
		Where("site_manager_id = ? AND date >= ? AND date <= ?", siteManagerID, start, end).
		Order("date desc, created_at desc").
		Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) GetByRange(start, end string) ([]model.AttendanceSheet, error) {
	var sheets []model.AttendanceSheet
	err := r.preload().
		Where("date >= ? AND date <= ?", start, end).
		Order("date desc, created_at desc").
		Find(&sheets).Error
	return sheets, err
}

func (r *attendanceRepository) UpdateEntry(entry *model.AttendedEmployee) error {
	return r.db.Save(entry).Error
}
