package model

import "gorm.io/gorm"

// Report is the free-text daily activity report, one per manager per day,
// independent of attendance.
type Report struct {
	gorm.Model
	SiteManagerID  uint   `json:"site_manager_id" gorm:"uniqueIndex:idx_report_manager_date;not null"`
	Date           string `json:"date" gorm:"uniqueIndex:idx_report_manager_date;not null"` // YYYY-MM-DD
	ActivitiesDone string `json:"activities_done"`
	NextDayPlan    string `json:"next_day_plan"`
	Comments       string `json:"comments"`
}
