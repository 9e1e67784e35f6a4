package handlers

import (
	"bingo-admin-service/internal/middleware"
	"bingo-admin-service/internal/services"
	"bingo-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
	Settings  *services.SettingsService
	Summary   *services.SummaryService
}

func NewDashboardHandler(dashboard *services.DashboardService, settings *services.SettingsService, summary *services.SummaryService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Settings: settings, Summary: summary}
}

func (h *DashboardHandler) Index(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	data, err := h.Dashboard.Overview(user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, data)
}

// Sales answers for the caller's own games unless an admin names another user.
func (h *DashboardHandler) Sales(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	userID := user.ID
	if q := c.Query("user_id"); q != "" && user.IsAdmin {
		userID = q
	}

	date, err := common.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	data, err := h.Dashboard.Sales(userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, data)
}

func (h *DashboardHandler) SalesSummary(c *gin.Context) {
	date, err := common.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	rows, err := h.Dashboard.SalesSummary(date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *DashboardHandler) AdminSales(c *gin.Context) {
	date, err := common.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	rows, err := h.Dashboard.AdminSales(date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *DashboardHandler) SalesReport(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	userID := user.ID
	if q := c.Query("user_id"); q != "" && user.IsAdmin {
		userID = q
	}

	start, err := common.ParseDay(c.Query("start"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}
	end, err := common.ParseDay(c.Query("end"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	report, err := h.Dashboard.SalesReportRange(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}

func (h *DashboardHandler) Commissions(c *gin.Context) {
	rows, err := h.Dashboard.CommissionsOverview()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rows)
}

func (h *DashboardHandler) Bonus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	userID := user.ID
	if q := c.Query("user_id"); q != "" && user.IsAdmin {
		userID = q
	}

	date, err := common.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	data, err := h.Dashboard.BonusReport(userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, data)
}

func (h *DashboardHandler) GetSettings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	respondOK(c, h.Settings.Get(user))
}

func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var settings services.GameSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.Settings.Update(user.ID, settings); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, settings)
}

func (h *DashboardHandler) WinningPattern(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	respondOK(c, h.Settings.Pattern(user))
}

// SummaryHistory serves the precomputed per-day rollups for range charts.
func (h *DashboardHandler) SummaryHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	userID := user.ID
	if q := c.Query("user_id"); q != "" && user.IsAdmin {
		userID = q
	}

	start, err := common.ParseDay(c.Query("start"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}
	end, err := common.ParseDay(c.Query("end"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	rows, err := h.Summary.History(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rows)
}
