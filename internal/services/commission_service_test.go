package services

import (
	"testing"

	"bingo-admin-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTiersDefaultsWhenEmpty(t *testing.T) {
	svc := NewCommissionService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	tiers, err := svc.GetTiers(user.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 8)
	assert.Equal(t, 3, tiers[0].MinCount)
	assert.Equal(t, 5, tiers[0].MaxCount)
	assert.Equal(t, 0.0, tiers[0].Multiplier)
	assert.Equal(t, 61, tiers[7].MinCount)
	assert.Equal(t, 150, tiers[7].MaxCount)
	assert.Equal(t, 0.40, tiers[7].Multiplier)

	// Reads never persist.
	var count int64
	require.NoError(t, svc.DB.Model(&models.CommissionTier{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaveTiersCreatesStandardRows(t *testing.T) {
	svc := NewCommissionService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	modified, err := svc.SaveTiers(user.ID, []TierUpdate{
		{MinCount: 3, MaxCount: 5, Multiplier: 0.05},
	})
	require.NoError(t, err)
	assert.True(t, modified)

	var rows []models.CommissionTier
	require.NoError(t, svc.DB.Where("user_id = ?", user.ID).Order("id").Find(&rows).Error)
	require.Len(t, rows, 8)

	// The addressed row got its multiplier, freshly created rows start at 0.
	assert.Equal(t, 0.05, rows[0].Multiplier)
	for _, r := range rows[1:] {
		assert.Equal(t, 0.0, r.Multiplier)
	}
	for _, r := range rows {
		require.NotNil(t, r.IndexValue)
	}
}

func TestSaveTiersSkipsNonStandardRanges(t *testing.T) {
	svc := NewCommissionService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	_, err := svc.SaveTiers(user.ID, nil)
	require.NoError(t, err)

	modified, err := svc.SaveTiers(user.ID, []TierUpdate{
		{MinCount: 2, MaxCount: 4, Multiplier: 0.9},
	})
	require.NoError(t, err)
	assert.False(t, modified)

	var count int64
	require.NoError(t, svc.DB.Model(&models.CommissionTier{}).
		Where("user_id = ? AND min_count = ? AND max_count = ?", user.ID, 2, 4).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaveTiersNoOpReturnsFalse(t *testing.T) {
	svc := NewCommissionService(newTestDB(t))
	user := seedOperator(t, svc.DB, "op1", "Lucky Shop")

	modified, err := svc.SaveTiers(user.ID, nil)
	require.NoError(t, err)
	assert.True(t, modified) // first save creates the 8 rows

	modified, err = svc.SaveTiers(user.ID, nil)
	require.NoError(t, err)
	assert.False(t, modified)

	// Re-writing the same multiplier changes nothing either.
	modified, err = svc.SaveTiers(user.ID, []TierUpdate{
		{MinCount: 3, MaxCount: 5, Multiplier: 0},
	})
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestSaveTiersThenLookup(t *testing.T) {
	db := newTestDB(t)
	commission := NewCommissionService(db)
	balance := NewBalanceService(db, &testClock{now: testNow})
	user := seedOperator(t, db, "op1", "Lucky Shop")

	_, err := commission.SaveTiers(user.ID, []TierUpdate{
		{MinCount: 6, MaxCount: 10, Multiplier: 0.12},
	})
	require.NoError(t, err)

	tier, err := balance.LookupCommissionTier(user.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 0.12, tier.Multiplier)
}
