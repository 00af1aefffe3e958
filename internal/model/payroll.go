package model

import "gorm.io/gorm"

// Payroll is a persisted per-worker snapshot for a billing period.
// (EmployeeID, Period, CommitVersion) identifies a snapshot: re-committing
// the same version is a no-op, a new version is a new audit snapshot.
type Payroll struct {
	gorm.Model
	EmployeeID    uint    `json:"employee_id" gorm:"index;not null"`
	Period        string  `json:"period" gorm:"index;not null"` // YYYY-MM
	CommitVersion string  `json:"commit_version" gorm:"default:v1"`
	DaysWorked    int     `json:"days_worked"`
	TotalSalary   float64 `json:"total_salary"`
	IsPaid        bool    `json:"is_paid" gorm:"default:true"`

	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}
