package handlers

import (
	"log"
	"strconv"

	"bingo-admin-service/internal/middleware"
	"bingo-admin-service/internal/services"
	"bingo-admin-service/internal/worker"
	"bingo-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

type BalanceHandler struct {
	Balance *services.BalanceService
	Asynq   *asynq.Client
}

func NewBalanceHandler(balance *services.BalanceService, asynqClient *asynq.Client) *BalanceHandler {
	return &BalanceHandler{Balance: balance, Asynq: asynqClient}
}

type TopUpRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *BalanceHandler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	row, err := h.Balance.RecordTopUp(req.UserID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, row)
}

func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	balance, err := h.Balance.DeriveBalance(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user_id": userID, "balance": balance})
}

func (h *BalanceHandler) CheckBalance(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	cartelaCount, err := strconv.Atoi(c.Query("cartela_count"))
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}
	stake, err := strconv.ParseFloat(c.Query("stake"), 64)
	if err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	sufficient, err := h.Balance.CheckSufficiency(user.ID, cartelaCount, stake)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"sufficient": sufficient})
}

type SettleGameRequest struct {
	CartelaCount int     `json:"cartela_count" binding:"required"`
	Stake        float64 `json:"stake" binding:"required"`
}

func (h *BalanceHandler) SettleGame(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req SettleGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	row, err := h.Balance.SettleGame(user.ID, req.CartelaCount, req.Stake)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, row)
}

type CloseGameRequest struct {
	TransactionID int `json:"transaction_id" binding:"required"`
	OnCall        int `json:"on_call"`
}

func (h *BalanceHandler) CloseGame(c *gin.Context) {
	var req CloseGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	row, err := h.Balance.CloseGame(req.TransactionID, req.OnCall)
	if err != nil {
		respondError(c, err)
		return
	}

	h.enqueueSummaryRefresh(common.FormatDay(row.Date))
	respondOK(c, row)
}

// enqueueSummaryRefresh keeps the daily rollup warm after a game closes. Best
// effort: a missing queue only logs.
func (h *BalanceHandler) enqueueSummaryRefresh(day string) {
	if h.Asynq == nil {
		return
	}
	task, err := worker.NewDailySummaryTask(day)
	if err != nil {
		log.Printf("Could not build summary task for %s: %v", day, err)
		return
	}
	if _, err := h.Asynq.Enqueue(task, asynq.Queue("low")); err != nil {
		log.Printf("Could not enqueue summary task for %s: %v", day, err)
	}
}

type BonusRequest struct {
	UserID          string  `json:"user_id" binding:"required"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	Amount          float64 `json:"amount"`
}

func (h *BalanceHandler) RecordBonus(c *gin.Context) {
	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	row, err := h.Balance.RecordBonus(req.UserID, req.TransactionType, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, row)
}

func (h *BalanceHandler) LedgerHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, total, err := h.Balance.LedgerHistory(user.ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, common.PaginateResponse(rows, total, page, limit, ""))
}
