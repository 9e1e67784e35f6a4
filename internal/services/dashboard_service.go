package services

import (
	"time"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/pkg/clock"

	"gorm.io/gorm"
)

// TotalCartelas is the fixed size of the cartela pool every shop plays from.
const TotalCartelas = 150

// DashboardService is the read-only reporting layer: thin aggregations over
// the ledger for operator and admin dashboards.
type DashboardService struct {
	DB      *gorm.DB
	Balance *BalanceService
	Clock   clock.Clock
}

func NewDashboardService(db *gorm.DB, balance *BalanceService, clk clock.Clock) *DashboardService {
	return &DashboardService{DB: db, Balance: balance, Clock: clk}
}

type OverviewData struct {
	IsAdmin              bool  `json:"is_admin"`
	TotalGamesPlayedToday int64 `json:"total_games_played_today"`
	TotalCartelas        int   `json:"total_cartelas"`
	TotalUsers           int64 `json:"total_users"`
	TotalShops           int64 `json:"total_shops"`
}

// Overview returns the landing-page counters. Admins see games across all
// non-admin operators; an operator sees only their own.
func (s *DashboardService) Overview(user *models.User) (*OverviewData, error) {
	today := dayOf(s.Clock.Now())

	var games int64
	query := s.DB.Model(&models.BalanceTransaction{}).
		Where("is_top_up = ? AND DATE(date) = ?", false, today)
	if user.IsAdmin {
		query = query.Where("user_id IN (?)",
			s.DB.Model(&models.User{}).Select("id").Where("is_admin = ?", false))
	} else {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.Count(&games).Error; err != nil {
		return nil, err
	}

	var operators int64
	if err := s.DB.Model(&models.User{}).Where("is_admin = ?", false).Count(&operators).Error; err != nil {
		return nil, err
	}

	return &OverviewData{
		IsAdmin:              user.IsAdmin,
		TotalGamesPlayedToday: games,
		TotalCartelas:        TotalCartelas,
		TotalUsers:           operators,
		TotalShops:           operators,
	}, nil
}

// SalesAction is one settled game as shown on the sales screens.
type SalesAction struct {
	UserID        string     `json:"user_id"`
	Username      string     `json:"username"`
	Commission    float64    `json:"commission"`
	Date          time.Time  `json:"date"`
	StartedTime   *time.Time `json:"started_time"`
	EndedTime     *time.Time `json:"ended_time"`
	ShopName      string     `json:"shop_name"`
	OnCall        int        `json:"on_call"`
	NoCards       int        `json:"no_cards"`
	Price         float64    `json:"price"`
	Collected     float64    `json:"collected"`
	WinningAmount float64    `json:"winning_amount"`
}

type SalesData struct {
	Details         []SalesAction `json:"details"`
	TotalCommission float64       `json:"total_commission"`
	UserID          string        `json:"user_id"`
	Date            string        `json:"date"`
}

// Sales lists a user's settled games for one day plus the day's commission
// total. A zero date defaults to today.
func (s *DashboardService) Sales(userID string, date time.Time) (*SalesData, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	day := s.dayOrToday(date)

	var rows []models.BalanceTransaction
	if err := s.DB.Where("user_id = ? AND is_top_up = ? AND DATE(date) = ?", userID, false, day).
		Order("date").Find(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]SalesAction, 0, len(rows))
	var total float64
	for _, r := range rows {
		details = append(details, salesAction(r, user.Username))
		total += r.Amount
	}

	return &SalesData{
		Details:         details,
		TotalCommission: total,
		UserID:          userID,
		Date:            day,
	}, nil
}

func salesAction(r models.BalanceTransaction, username string) SalesAction {
	a := SalesAction{
		UserID:      r.UserID,
		Username:    username,
		Commission:  r.Amount,
		Date:        r.Date,
		StartedTime: r.StartedTime,
		EndedTime:   r.EndedTime,
	}
	if r.ShopName != nil {
		a.ShopName = *r.ShopName
	}
	if r.OnCall != nil {
		a.OnCall = *r.OnCall
	}
	if r.NoCards != nil {
		a.NoCards = *r.NoCards
	}
	if r.Price != nil {
		a.Price = *r.Price
	}
	if r.Collected != nil {
		a.Collected = *r.Collected
	}
	if r.WinningAmount != nil {
		a.WinningAmount = *r.WinningAmount
	}
	return a
}

// SalesSummaryRow is one operator's totals for a day, for the admin summary
// table.
type SalesSummaryRow struct {
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	FullName        string  `json:"full_name"`
	ShopName        string  `json:"shop_name"`
	Games           int64   `json:"games"`
	TotalCommission float64 `json:"total_commission"`
	TotalWinnings   float64 `json:"total_winnings"`
}

// SalesSummary groups one day's settled games by operator, biggest commission
// first.
func (s *DashboardService) SalesSummary(date time.Time) ([]SalesSummaryRow, error) {
	day := s.dayOrToday(date)

	var rows []SalesSummaryRow
	err := s.DB.Model(&models.BalanceTransaction{}).
		Select(`balance_transactions.user_id,
			users.username,
			users.full_name,
			users.shop_name,
			COUNT(*) AS games,
			SUM(balance_transactions.amount) AS total_commission,
			COALESCE(SUM(balance_transactions.winning_amount), 0) AS total_winnings`).
		Joins("JOIN users ON users.id = balance_transactions.user_id").
		Where("balance_transactions.is_top_up = ? AND DATE(balance_transactions.date) = ?", false, day).
		Group("balance_transactions.user_id, users.username, users.full_name, users.shop_name").
		Order("total_commission DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminSalesRow aggregates an operator's game count and commission for the
// admin sales screen. Operators with no games are omitted.
type AdminSalesRow struct {
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	FullName        string  `json:"full_name"`
	ShopName        string  `json:"shop_name"`
	NumberOfGames   int64   `json:"number_of_games"`
	TotalCommission float64 `json:"total_commission"`
}

func (s *DashboardService) AdminSales(date time.Time) ([]AdminSalesRow, error) {
	day := s.dayOrToday(date)

	var rows []AdminSalesRow
	err := s.DB.Model(&models.BalanceTransaction{}).
		Select(`balance_transactions.user_id,
			users.username,
			users.full_name,
			users.shop_name,
			COUNT(*) AS number_of_games,
			SUM(balance_transactions.amount) AS total_commission`).
		Joins("JOIN users ON users.id = balance_transactions.user_id").
		Where("balance_transactions.is_top_up = ? AND DATE(balance_transactions.date) = ?", false, day).
		Group("balance_transactions.user_id, users.username, users.full_name, users.shop_name").
		Having("COUNT(*) > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesReport is a date-range aggregate for one operator.
type SalesReport struct {
	Username         string  `json:"username"`
	NumberOfGames    int64   `json:"number_of_games"`
	TotalCommission  float64 `json:"total_commission"`
	TotalCollected   float64 `json:"total_collected"`
}

func (s *DashboardService) SalesReportRange(userID string, start, end time.Time) (*SalesReport, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidInput
	}

	report := SalesReport{Username: user.Username}

	base := s.DB.Model(&models.BalanceTransaction{}).
		Where("user_id = ? AND DATE(date) >= ? AND DATE(date) <= ?",
			userID, dayOf(start), dayOf(end))

	if err := base.Session(&gorm.Session{}).Where("is_top_up = ?", false).
		Count(&report.NumberOfGames).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_top_up = ?", false).
		Select("COALESCE(SUM(amount), 0)").Scan(&report.TotalCommission).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(collected), 0)").Scan(&report.TotalCollected).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// CommissionsRow pairs an operator with their derived balance and how much of
// their latest top-up is left.
type CommissionsRow struct {
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	Credit      float64    `json:"credit"`
	Balance     float64    `json:"balance"`
	Status      float64    `json:"status"`
	LastTopUp   *time.Time `json:"last_top_up"`
}

// CommissionsOverview walks every non-admin operator and re-derives their
// balance against the latest top-up. Status is balance as a percentage of that
// credit.
func (s *DashboardService) CommissionsOverview() ([]CommissionsRow, error) {
	var users []models.User
	if err := s.DB.Where("is_admin = ?", false).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}

	rows := make([]CommissionsRow, 0, len(users))
	for _, u := range users {
		balance, err := s.Balance.DeriveBalance(u.ID)
		if err != nil {
			return nil, err
		}

		var lastTopUp models.BalanceTransaction
		var credit float64
		var lastDate *time.Time
		err = s.DB.Where("user_id = ? AND is_top_up = ?", u.ID, true).
			Order("date DESC").First(&lastTopUp).Error
		switch err {
		case nil:
			credit = lastTopUp.Amount
			lastDate = &lastTopUp.Date
		case gorm.ErrRecordNotFound:
		default:
			return nil, err
		}

		var status float64
		if credit > 0 {
			status = balance / credit * 100
		}

		rows = append(rows, CommissionsRow{
			UserID:      u.ID,
			Username:    u.Username,
			FullName:    u.FullName,
			PhoneNumber: u.PhoneNumber,
			Address:     u.Address,
			Credit:      credit,
			Balance:     balance,
			Status:      status,
			LastTopUp:   lastDate,
		})
	}
	return rows, nil
}

type BonusReportData struct {
	UserID     string                    `json:"user_id"`
	Details    []models.BonusTransaction `json:"details"`
	TotalBonus float64                   `json:"total_bonus"`
	Date       string                    `json:"date"`
}

// BonusReport lists a user's bonus rows for one day alongside the effective
// accrued total (deposits after the latest withdrawal).
func (s *DashboardService) BonusReport(userID string, date time.Time) (*BonusReportData, error) {
	if _, err := s.findUser(userID); err != nil {
		return nil, err
	}

	day := s.dayOrToday(date)

	var details []models.BonusTransaction
	if err := s.DB.Where("user_id = ? AND DATE(date) = ?", userID, day).
		Order("date").Find(&details).Error; err != nil {
		return nil, err
	}

	total, err := s.Balance.EffectiveBonusTotal(userID)
	if err != nil {
		return nil, err
	}

	return &BonusReportData{
		UserID:     userID,
		Details:    details,
		TotalBonus: total,
		Date:       day,
	}, nil
}

func (s *DashboardService) findUser(userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DashboardService) dayOrToday(date time.Time) string {
	if date.IsZero() {
		return dayOf(s.Clock.Now())
	}
	return dayOf(date)
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
