package handlers

import (
	"errors"
	"log"
	"net/http"

	"bingo-admin-service/internal/services"
	"bingo-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and surface as a generic 500 so store details never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrNoTierConfigured),
		errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrUserInactive):
		c.JSON(http.StatusForbidden, common.NewErrorResponse(err.Error()))
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error"))
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
}
