package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/pkg/clock"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService is the auth collaborator: it owns shop-operator accounts,
// password verification and the bearer tokens requests carry.
type IdentityService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewIdentityService(db *gorm.DB, clk clock.Clock) *IdentityService {
	return &IdentityService{DB: db, Clock: clk}
}

func tokenTTL() time.Duration {
	minutes := 1440
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	return time.Duration(minutes) * time.Minute
}

type RegisterDTO struct {
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
	Address     string
	ShopName    string
}

type AuthResult struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// Register creates a non-admin, active operator account and signs it in.
func (s *IdentityService) Register(data RegisterDTO) (*AuthResult, error) {
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

	log.Printf("User %s registered", user.Username)
	return s.issueTokens(user)
}

// Login verifies credentials and issues a fresh token pair. Inactive accounts
// are rejected before the password check.
func (s *IdentityService) Login(username, password string) (*AuthResult, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	log.Printf("User %s logged in", user.Username)
	return s.issueTokens(user)
}

// Refresh rotates a token pair. The old pair is revoked.
func (s *IdentityService) Refresh(refreshToken string) (*AuthResult, error) {
	var token models.AuthToken
	if err := s.DB.Where("refresh_token = ?", refreshToken).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	var user models.User
	if err := s.DB.Where("id = ?", token.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.DB.Delete(&token).Error; err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *IdentityService) issueTokens(user models.User) (*AuthResult, error) {
	token := models.AuthToken{
		UserID:       user.ID,
		Token:        newOpaqueToken(),
		RefreshToken: newOpaqueToken(),
		ExpiresAt:    s.Clock.Now().Add(tokenTTL()),
	}
	if err := s.DB.Create(&token).Error; err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		Token:        token.Token,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt,
	}, nil
}

func newOpaqueToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// ValidateToken resolves a bearer token to its user, enforcing expiry.
func (s *IdentityService) ValidateToken(bearer string) (*models.User, error) {
	var token models.AuthToken
	if err := s.DB.Where("token = ?", bearer).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if s.Clock.Now().After(token.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	var user models.User
	if err := s.DB.Where("id = ?", token.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *IdentityService) FindByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *IdentityService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces a user's password hash. Used by admins to reset
// operator credentials.
func (s *IdentityService) UpdatePassword(userID, newPassword string) error {
	if userID == "" || newPassword == "" {
		return fmt.Errorf("user id and new password are required: %w", ErrInvalidInput)
	}

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(&user).Update("password_hash", string(hash)).Error
}
