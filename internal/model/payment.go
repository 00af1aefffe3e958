package model

import "gorm.io/gorm"

// Payment is an append-only receipt for one paid day of work. At most one
// per (employee, site manager, date); the check happens in the handler
// before insert, which keeps the pay batch idempotent.
type Payment struct {
	gorm.Model
	EmployeeID    uint    `json:"employee_id" gorm:"index;not null"`
	SiteManagerID uint    `json:"site_manager_id" gorm:"index;not null"`
	Date          string  `json:"date" gorm:"not null"` // day the wage was earned, YYYY-MM-DD
	Amount        float64 `json:"amount"`               // day rate at payment time
	Status        string  `json:"status" gorm:"default:paid"`

	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}
