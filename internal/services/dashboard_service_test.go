package services

import (
	"testing"
	"time"

	"bingo-admin-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDashboardFixture seeds two operators with games on two days:
// day one: op1 plays 8@10 (commission 8) and 11@10 (commission 22),
//          op2 plays 8@10 (commission 8);
// day two: op1 plays 8@10 (commission 8).
func newDashboardFixture(t *testing.T) (*DashboardService, *models.User, *models.User, time.Time, time.Time) {
	clk := &testClock{now: testNow}
	db := newTestDB(t)
	balance := NewBalanceService(db, clk)
	dashboard := NewDashboardService(db, balance, clk)

	op1 := seedOperator(t, db, "op1", "Lucky Shop")
	op2 := seedOperator(t, db, "op2", "Star Shop")

	_, err := balance.RecordTopUp(op1.ID, 1000)
	require.NoError(t, err)
	_, err = balance.RecordTopUp(op2.ID, 1000)
	require.NoError(t, err)

	dayOne := testNow
	_, err = balance.SettleGame(op1.ID, 8, 10)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = balance.SettleGame(op1.ID, 11, 10)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = balance.SettleGame(op2.ID, 8, 10)
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	dayTwo := clk.Now()
	_, err = balance.SettleGame(op1.ID, 8, 10)
	require.NoError(t, err)

	return dashboard, op1, op2, dayOne, dayTwo
}

func TestSalesDayFilterAndTotal(t *testing.T) {
	dashboard, op1, _, dayOne, dayTwo := newDashboardFixture(t)

	data, err := dashboard.Sales(op1.ID, dayOne)
	require.NoError(t, err)
	require.Len(t, data.Details, 2)
	assert.Equal(t, 30.0, data.TotalCommission) // 8 + 22
	assert.Equal(t, "op1", data.Details[0].Username)
	assert.Equal(t, dayOf(dayOne), data.Date)

	data, err = dashboard.Sales(op1.ID, dayTwo)
	require.NoError(t, err)
	require.Len(t, data.Details, 1)
	assert.Equal(t, 8.0, data.TotalCommission)

	_, err = dashboard.Sales("no-such-user", dayOne)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSalesDefaultsToToday(t *testing.T) {
	dashboard, op1, _, _, dayTwo := newDashboardFixture(t)

	// Fixture clock now sits on day two.
	data, err := dashboard.Sales(op1.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, dayOf(dayTwo), data.Date)
	require.Len(t, data.Details, 1)
}

func TestSalesSummaryGroupsAndOrders(t *testing.T) {
	dashboard, op1, op2, dayOne, _ := newDashboardFixture(t)

	rows, err := dashboard.SalesSummary(dayOne)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Biggest commission first.
	assert.Equal(t, op1.ID, rows[0].UserID)
	assert.Equal(t, int64(2), rows[0].Games)
	assert.Equal(t, 30.0, rows[0].TotalCommission)
	assert.Equal(t, op2.ID, rows[1].UserID)
	assert.Equal(t, int64(1), rows[1].Games)
	assert.Equal(t, 8.0, rows[1].TotalCommission)
}

func TestAdminSalesOmitsIdleOperators(t *testing.T) {
	dashboard, op1, _, _, dayTwo := newDashboardFixture(t)

	rows, err := dashboard.AdminSales(dayTwo)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, op1.ID, rows[0].UserID)
	assert.Equal(t, int64(1), rows[0].NumberOfGames)
}

func TestSalesReportRange(t *testing.T) {
	dashboard, op1, _, dayOne, dayTwo := newDashboardFixture(t)

	report, err := dashboard.SalesReportRange(op1.ID, dayOne, dayTwo)
	require.NoError(t, err)
	assert.Equal(t, "op1", report.Username)
	assert.Equal(t, int64(3), report.NumberOfGames)
	assert.Equal(t, 38.0, report.TotalCommission)      // 8 + 22 + 8
	assert.Equal(t, 80.0+110.0+80.0, report.TotalCollected)

	_, err = dashboard.SalesReportRange(op1.ID, dayTwo, dayOne)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOverviewCounters(t *testing.T) {
	dashboard, op1, _, _, _ := newDashboardFixture(t)
	admin := seedAdmin(t, dashboard.DB)

	// Clock sits on day two: one game today for op1, none for op2.
	data, err := dashboard.Overview(op1)
	require.NoError(t, err)
	assert.False(t, data.IsAdmin)
	assert.Equal(t, int64(1), data.TotalGamesPlayedToday)
	assert.Equal(t, TotalCartelas, data.TotalCartelas)
	assert.Equal(t, int64(2), data.TotalUsers)

	adminData, err := dashboard.Overview(admin)
	require.NoError(t, err)
	assert.True(t, adminData.IsAdmin)
	assert.Equal(t, int64(1), adminData.TotalGamesPlayedToday)
}

func TestCommissionsOverview(t *testing.T) {
	dashboard, op1, op2, _, _ := newDashboardFixture(t)

	rows, err := dashboard.CommissionsOverview()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]CommissionsRow{}
	for _, r := range rows {
		byID[r.UserID] = r
	}

	// op1 spent 8+22+8 of a 1000 top-up.
	r1 := byID[op1.ID]
	assert.Equal(t, 1000.0, r1.Credit)
	assert.Equal(t, 962.0, r1.Balance)
	assert.InDelta(t, 96.2, r1.Status, 0.001)
	require.NotNil(t, r1.LastTopUp)

	r2 := byID[op2.ID]
	assert.Equal(t, 992.0, r2.Balance)
}

func TestBonusReport(t *testing.T) {
	clk := &testClock{now: testNow}
	db := newTestDB(t)
	balance := NewBalanceService(db, clk)
	dashboard := NewDashboardService(db, balance, clk)
	user := seedOperator(t, db, "op1", "Lucky Shop")

	_, err := balance.RecordBonus(user.ID, models.BonusDeposit, 50)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = balance.RecordBonus(user.ID, models.BonusDeposit, 30)
	require.NoError(t, err)

	data, err := dashboard.BonusReport(user.ID, testNow)
	require.NoError(t, err)
	require.Len(t, data.Details, 2)
	assert.Equal(t, 80.0, data.TotalBonus)

	// The total is the effective balance, not a day total: a next-day report
	// still sees it.
	clk.Advance(24 * time.Hour)
	data, err = dashboard.BonusReport(user.ID, clk.Now())
	require.NoError(t, err)
	assert.Empty(t, data.Details)
	assert.Equal(t, 80.0, data.TotalBonus)
}
