package services

import (
	"testing"
	"time"

	"bingo-admin-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDayUpserts(t *testing.T) {
	clk := &testClock{now: testNow}
	db := newTestDB(t)
	balance := NewBalanceService(db, clk)
	summary := NewSummaryService(db)
	user := seedOperator(t, db, "op1", "Lucky Shop")

	_, err := balance.RecordTopUp(user.ID, 1000)
	require.NoError(t, err)
	_, err = balance.SettleGame(user.ID, 8, 10)
	require.NoError(t, err)

	count, err := summary.SnapshotDay(testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var row models.DailySummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&row).Error)
	assert.Equal(t, 1, row.Games)
	assert.Equal(t, 8.0, row.TotalCommission)
	assert.Equal(t, 72.0, row.TotalWinnings)
	assert.Equal(t, 80.0, row.TotalCollected)

	// A later snapshot of the same day updates in place.
	clk.Advance(time.Minute)
	_, err = balance.SettleGame(user.ID, 11, 10)
	require.NoError(t, err)

	_, err = summary.SnapshotDay(testNow)
	require.NoError(t, err)

	var total int64
	require.NoError(t, db.Model(&models.DailySummary{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	require.NoError(t, db.Where("user_id = ?", user.ID).First(&row).Error)
	assert.Equal(t, 2, row.Games)
	assert.Equal(t, 30.0, row.TotalCommission)
}

func TestSummaryHistoryRange(t *testing.T) {
	db := newTestDB(t)
	summary := NewSummaryService(db)
	user := seedOperator(t, db, "op1", "Lucky Shop")

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.DailySummary{
			UserID: user.ID,
			Day:    time.Date(2024, 3, 10+i, 0, 0, 0, 0, time.UTC),
			Games:  i + 1,
		}).Error)
	}

	rows, err := summary.History(user.ID,
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Games) // newest first

	_, err = summary.History("", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
