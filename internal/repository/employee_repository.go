package repository

import (
	"ubudasa-ems-backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(emp *model.Employee) error
	FindByID(id uint) (*model.Employee, error)
	FindByPhone(phone, site string) (*model.Employee, error)
	GetAll(site string) ([]model.Employee, error)
	Update(emp *model.Employee) error
	Delete(emp *model.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) Create(emp *model.Employee) error {
	return r.db.Create(emp).Error
}

func (r *employeeRepository) FindByID(id uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.First(&emp, id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) FindByPhone(phone, site string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.Where("phone = ? AND site = ?", phone, site).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetAll returns every worker, newest first. An empty site means no scoping
// (single-tenant deployments).
func (r *employeeRepository) GetAll(site string) ([]model.Employee, error) {
	var emps []model.Employee
	query := r.db.Order("created_at desc")
	if site != "" {
		query = query.Where("site = ?", site)
	}
	err := query.Find(&emps).Error
	return emps, err
}

func (r *employeeRepository) Update(emp *model.Employee) error {
	return r.db.Save(emp).Error
}

func (r *employeeRepository) Delete(emp *model.Employee) error {
	return r.db.Delete(emp).Error
}
