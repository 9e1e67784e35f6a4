package handlers

import (
	"bingo-admin-service/internal/middleware"
	"bingo-admin-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	Commission *services.CommissionService
}

func NewCommissionHandler(commission *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{Commission: commission}
}

func (h *CommissionHandler) GetTiers(c *gin.Context) {
	userID := c.Param("userId")

	tiers, err := h.Commission.GetTiers(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tiers)
}

type SaveTiersRequest struct {
	UserID string                `json:"user_id"`
	Tiers  []services.TierUpdate `json:"tiers" binding:"required"`
}

// SaveTiers writes tier multipliers. An operator can only edit their own
// table; an admin can name any user.
func (h *CommissionHandler) SaveTiers(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req SaveTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	userID := user.ID
	if req.UserID != "" && user.IsAdmin {
		userID = req.UserID
	}

	modified, err := h.Commission.SaveTiers(userID, req.Tiers)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"modified": modified})
}
