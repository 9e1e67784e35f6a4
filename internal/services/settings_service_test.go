package services

import (
	"testing"

	"bingo-admin-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	settings := svc.Get(user)
	assert.False(t, settings.CheckRows)
	assert.True(t, settings.Firework) // on unless explicitly disabled
	assert.Nil(t, settings.SoundSpeed)
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	speed := 3
	voice := "amharic-male"
	require.NoError(t, svc.Update(user.ID, GameSettings{
		SoundSpeed:   &speed,
		VoiceType:    &voice,
		CheckRows:    true,
		CheckCorners: true,
		Firework:     false,
	}))

	var reloaded models.User
	require.NoError(t, svc.DB.Where("id = ?", user.ID).First(&reloaded).Error)

	settings := svc.Get(&reloaded)
	require.NotNil(t, settings.SoundSpeed)
	assert.Equal(t, 3, *settings.SoundSpeed)
	assert.True(t, settings.CheckRows)
	assert.False(t, settings.CheckColumns)
	assert.True(t, settings.CheckCorners)
	assert.False(t, settings.Firework)

	pattern := svc.Pattern(&reloaded)
	assert.True(t, pattern.CheckRows)
	assert.True(t, pattern.CheckCorners)
	assert.False(t, pattern.CheckDiagonals)

	assert.ErrorIs(t, svc.Update("no-such-user", GameSettings{}), ErrUserNotFound)
}
