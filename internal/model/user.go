package model

import "gorm.io/gorm"

const (
	RoleAdmin       = "ADMIN"
	RoleSiteManager = "SITE_MANAGER"
)

// User is a back-office account: either the admin or a site manager.
// Workers never log in; they live in Employee.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Phone    string `json:"phone" gorm:"unique;not null"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:SITE_MANAGER"` // ADMIN / SITE_MANAGER
	Site     string `json:"site"`                             // site affiliation, empty for admins
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
