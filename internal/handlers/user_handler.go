package handlers

import (
	"bingo-admin-service/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users    *services.UserAdminService
	Identity *services.IdentityService
}

func NewUserHandler(users *services.UserAdminService, identity *services.IdentityService) *UserHandler {
	return &UserHandler{Users: users, Identity: identity}
}

func (h *UserHandler) List(c *gin.Context) {
	operators, err := h.Users.ListOperators()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, operators)
}

type AddUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	ShopName    string `json:"shop_name"`
}

func (h *UserHandler) Add(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.Users.AddOperator(services.AddUserDTO{
		Username:    req.Username,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		ShopName:    req.ShopName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

type EditUserRequest struct {
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	PhoneNumber string  `json:"phone_number"`
	Address     string  `json:"address"`
	ShopName    string  `json:"shop_name"`
	IsActive    *bool   `json:"is_active"`
	GameRule    *string `json:"game_rule"`
}

func (h *UserHandler) Edit(c *gin.Context) {
	userID := c.Param("userId")

	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.Users.EditOperator(userID, services.EditUserDTO{
		Username:    req.Username,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		ShopName:    req.ShopName,
		IsActive:    req.IsActive,
		GameRule:    req.GameRule,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *UserHandler) ToggleStatus(c *gin.Context) {
	userID := c.Param("userId")

	active, err := h.Users.ToggleActive(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user_id": userID, "is_active": active})
}

type UpdatePasswordRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.Identity.UpdatePassword(req.UserID, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user_id": req.UserID})
}
