package config

import (
	"fmt"
	"log"

	"ubudasa-ems-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=UTC
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASS", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "ubudasa_ems"),
	)

	// TranslateError lets unique-index violations surface as gorm.ErrDuplicatedKey,
	// which is what makes the one-sheet-per-manager-per-day insert atomic.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to database")
	}

	log.Println("Database connection established")

	// Auto Migration: create tables from the structs in internal/model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Employee{})
	db.AutoMigrate(&model.AttendanceSheet{})
	db.AutoMigrate(&model.AttendedEmployee{})
	db.AutoMigrate(&model.Payment{})
	db.AutoMigrate(&model.Payroll{})
	db.AutoMigrate(&model.Report{})

	DB = db
}
