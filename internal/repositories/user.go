package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"signoff/internal/models"
	"signoff/pkg/apperrors"
)

func UserByID(db *gorm.DB, userID int) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstUserWithRole resolves the identity a new step is assigned to. Ordered
// by id so the assignment is stable when several users hold the role.
func FirstUserWithRole(db *gorm.DB, role string) (*models.User, error) {
	var user models.User
	err := db.Where("role = ?", role).Order("id").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNoApproverForRole, role)
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}
