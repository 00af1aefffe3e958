package model

import "gorm.io/gorm"

// Employee is a day laborer identified by phone number within a site.
// Rows are created implicitly the first time a manager reports the phone
// number during attendance finalization.
type Employee struct {
	gorm.Model
	Name          string  `json:"name"`
	Phone         string  `json:"phone" gorm:"uniqueIndex:idx_employee_phone_site;not null"`
	Site          string  `json:"site" gorm:"uniqueIndex:idx_employee_phone_site"`
	CurrentSalary float64 `json:"current_salary"` // mutable day rate
	Photo         string  `json:"photo"`
	CreatedByID   uint    `json:"created_by_id"`
}
