package postgres

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"signoff/internal/models"
)

var db *gorm.DB

func InitDB() error {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := os.Getenv("SSL_MODE")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=public",
		dbHost, dbUser, dbPassword, dbName, dbPort, sslMode)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.ApprovalRequest{},
		&models.ApprovalStep{},
		&models.Attachment{},
		&models.StepReminder{},
	)
}

func GetDB() *gorm.DB {
	return db
}
