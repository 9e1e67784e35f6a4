package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListOperators(t *testing.T) {
	svc := NewUserAdminService(newTestDB(t))
	seedAdmin(t, svc.DB)

	user, err := svc.AddOperator(AddUserDTO{
		Username: "op1",
		Password: "secret123",
		FullName: "First Operator",
		ShopName: "Lucky Shop",
	})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.PasswordHash)

	_, err = svc.AddOperator(AddUserDTO{
		Username: "op1",
		Password: "x",
		FullName: "Duplicate",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Admin accounts stay out of the operator list.
	operators, err := svc.ListOperators()
	require.NoError(t, err)
	require.Len(t, operators, 1)
	assert.Equal(t, "op1", operators[0].Username)
}

func TestEditOperator(t *testing.T) {
	svc := NewUserAdminService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")
	seedOperator(t, svc.DB, "op2", "Star Shop")

	inactive := false
	updated, err := svc.EditOperator(user.ID, EditUserDTO{
		FullName:    "Renamed Operator",
		PhoneNumber: "0911000000",
		ShopName:    "Luckier Shop",
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Operator", updated.FullName)
	assert.Equal(t, "Luckier Shop", updated.ShopName)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "op1", updated.Username) // unchanged when blank

	_, err = svc.EditOperator(user.ID, EditUserDTO{Username: "op2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.EditOperator("no-such-user", EditUserDTO{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleActive(t *testing.T) {
	svc := NewUserAdminService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	active, err := svc.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.ToggleActive("no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
