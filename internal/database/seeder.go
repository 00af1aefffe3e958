package database

import (
	"log"

	"ubudasa-ems-backend/config"
	"ubudasa-ems-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll creates the initial admin account. Safe to run repeatedly.
func SeedAll(db *gorm.DB) error {
	phone := config.GetEnv("SEED_ADMIN_PHONE", "0000000000")
	password := config.GetEnv("SEED_ADMIN_PASSWORD", "admin123")
	name := config.GetEnv("SEED_ADMIN_NAME", "Administrator")

	var existing model.User
	err := db.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		log.Printf("seeder: admin %s already exists, skipping", phone)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:     name,
		Phone:    phone,
		Password: string(hashed),
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeder: created admin %s", phone)
	return nil
}
