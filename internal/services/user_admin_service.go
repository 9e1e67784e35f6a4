package services

import (
	"fmt"

	"bingo-admin-service/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserAdminService covers the super-admin's operator management screens.
type UserAdminService struct {
	DB *gorm.DB
}

func NewUserAdminService(db *gorm.DB) *UserAdminService {
	return &UserAdminService{DB: db}
}

// ListOperators returns all non-admin accounts.
func (s *UserAdminService) ListOperators() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("is_admin = ?", false).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type AddUserDTO struct {
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
	Address     string
	ShopName    string
}

// AddOperator creates an active, non-admin operator account.
func (s *UserAdminService) AddOperator(data AddUserDTO) (*models.User, error) {
	if data.Username == "" || data.Password == "" || data.FullName == "" {
		return nil, fmt.Errorf("username, password and full name are required: %w", ErrInvalidInput)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", data.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     data.Username,
		PasswordHash: string(hash),
		FullName:     data.FullName,
		PhoneNumber:  data.PhoneNumber,
		Address:      data.Address,
		ShopName:     data.ShopName,
		IsAdmin:      false,
		IsActive:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type EditUserDTO struct {
	Username    string
	FullName    string
	PhoneNumber string
	Address     string
	ShopName    string
	IsActive    *bool
	GameRule    *string
}

// EditOperator updates an operator's profile fields. Password changes go
// through IdentityService.UpdatePassword.
func (s *UserAdminService) EditOperator(userID string, data EditUserDTO) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if data.Username != "" && data.Username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).
			Where("username = ? AND id != ?", data.Username, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		user.Username = data.Username
	}
	if data.FullName != "" {
		user.FullName = data.FullName
	}
	user.PhoneNumber = data.PhoneNumber
	user.Address = data.Address
	user.ShopName = data.ShopName
	if data.IsActive != nil {
		user.IsActive = *data.IsActive
	}
	if data.GameRule != nil {
		user.GameRule = data.GameRule
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleActive flips the active flag and returns the new state. Inactive
// operators cannot log in.
func (s *UserAdminService) ToggleActive(userID string) (bool, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrUserNotFound
		}
		return false, err
	}

	user.IsActive = !user.IsActive
	if err := s.DB.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return false, err
	}
	return user.IsActive, nil
}
