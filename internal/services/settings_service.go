package services

import (
	"bingo-admin-service/internal/models"

	"gorm.io/gorm"
)

// SettingsService reads and writes the per-operator game settings stored on
// the user row (caller voice, winning-pattern checks, firework animation).
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

type GameSettings struct {
	SoundSpeed     *int    `json:"sound_speed"`
	VoiceType      *string `json:"voice_type"`
	GameRule       *string `json:"game_rule"`
	CheckRows      bool    `json:"check_rows"`
	CheckColumns   bool    `json:"check_columns"`
	CheckDiagonals bool    `json:"check_diagonals"`
	CheckCorners   bool    `json:"check_corners"`
	CheckMiddle    bool    `json:"check_middle"`
	Firework       bool    `json:"firework"`
}

func (s *SettingsService) Get(user *models.User) GameSettings {
	return GameSettings{
		SoundSpeed:     user.SoundSpeed,
		VoiceType:      user.VoiceType,
		GameRule:       user.GameRule,
		CheckRows:      boolOr(user.CheckRows, false),
		CheckColumns:   boolOr(user.CheckColumns, false),
		CheckDiagonals: boolOr(user.CheckDiagonals, false),
		CheckCorners:   boolOr(user.CheckCorners, false),
		CheckMiddle:    boolOr(user.CheckMiddle, false),
		Firework:       boolOr(user.Firework, true),
	}
}

func (s *SettingsService) Update(userID string, settings GameSettings) error {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUserNotFound
		}
		return err
	}

	user.SoundSpeed = settings.SoundSpeed
	user.VoiceType = settings.VoiceType
	user.GameRule = settings.GameRule
	user.CheckRows = &settings.CheckRows
	user.CheckColumns = &settings.CheckColumns
	user.CheckDiagonals = &settings.CheckDiagonals
	user.CheckCorners = &settings.CheckCorners
	user.CheckMiddle = &settings.CheckMiddle
	user.Firework = &settings.Firework

	return s.DB.Save(&user).Error
}

// WinningPattern is the subset of settings the game screen polls while
// checking cards.
type WinningPattern struct {
	CheckRows      bool `json:"check_rows"`
	CheckColumns   bool `json:"check_columns"`
	CheckDiagonals bool `json:"check_diagonals"`
	CheckCorners   bool `json:"check_corners"`
	CheckMiddle    bool `json:"check_middle"`
}

func (s *SettingsService) Pattern(user *models.User) WinningPattern {
	return WinningPattern{
		CheckRows:      boolOr(user.CheckRows, false),
		CheckColumns:   boolOr(user.CheckColumns, false),
		CheckDiagonals: boolOr(user.CheckDiagonals, false),
		CheckCorners:   boolOr(user.CheckCorners, false),
		CheckMiddle:    boolOr(user.CheckMiddle, false),
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
