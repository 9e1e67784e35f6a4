package services

import (
	"testing"
	"time"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/pkg/clock"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow is midday so no timezone conversion can shift the calendar day.
var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, clock.EAT)

// testClock is a settable clock so tests can order ledger rows in time.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.BalanceTransaction{},
		&models.BonusTransaction{},
		&models.CommissionTier{},
		&models.ArchivedBonusTransaction{},
		&models.DailySummary{},
	))
	return db
}

func seedOperator(t *testing.T, db *gorm.DB, username, shopName string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		FullName: "Operator " + username,
		ShopName: shopName,
		IsAdmin:  false,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewString(),
		Username: "admin",
		FullName: "Administrator",
		IsAdmin:  true,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
