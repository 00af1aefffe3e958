package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"

	PaymentPaid   = "PAID"
	PaymentUnpaid = "UNPAID"
)

// AttendanceSheet is one day's roster for one site manager. Date is the
// canonical YYYY-MM-DD key; the composite unique index is the only thing
// standing between two concurrent finalize calls for the same day.
type AttendanceSheet struct {
	gorm.Model
	SiteManagerID uint   `json:"site_manager_id" gorm:"uniqueIndex:idx_manager_date;not null"`
	Date          string `json:"date" gorm:"uniqueIndex:idx_manager_date;not null"` // YYYY-MM-DD
	GroupPhoto    string `json:"group_photo" gorm:"not null"`

	Entries     []AttendedEmployee `json:"entries" gorm:"foreignKey:AttendanceSheetID"`
	SiteManager User               `json:"site_manager" gorm:"foreignKey:SiteManagerID"`
}

// AttendedEmployee is one worker line on a sheet. Salary is the day rate
// agreed that morning, independent of the worker's current rate. The only
// mutation after insert is UNPAID -> PAID.
type AttendedEmployee struct {
	gorm.Model
	AttendanceSheetID uint       `json:"attendance_sheet_id" gorm:"index"`
	EmployeeID        uint       `json:"employee_id" gorm:"index"`
	Salary            float64    `json:"salary"`
	Status            string     `json:"status" gorm:"default:Present"`        // Present / Absent
	PaymentStatus     string     `json:"payment_status" gorm:"default:UNPAID"` // PAID / UNPAID
	PaidAt            *time.Time `json:"paid_at"`

	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}
