package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bingo-admin-service/internal/models"
	"bingo-admin-service/internal/services"
	"bingo-admin-service/pkg/clock"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *services.IdentityService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuthToken{}))

	identity := services.NewIdentityService(db,
		clock.Fixed(time.Date(2024, 3, 15, 12, 0, 0, 0, clock.EAT)))

	r := gin.New()
	r.GET("/me", RequireAuth(identity), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/admin", RequireAuth(identity), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, identity
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, identity := newAuthRouter(t)

	result, err := identity.Register(services.RegisterDTO{
		Username: "op1",
		Password: "secret123",
		FullName: "Test Operator",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "bogus").Code)

	w := get(r, "/me", result.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "op1")
}

func TestRequireAdmin(t *testing.T) {
	r, identity := newAuthRouter(t)

	result, err := identity.Register(services.RegisterDTO{
		Username: "op1",
		Password: "secret123",
		FullName: "Test Operator",
	})
	require.NoError(t, err)

	// Registration yields a non-admin account.
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", result.Token).Code)

	require.NoError(t, identity.DB.Model(&models.User{}).
		Where("id = ?", result.User.ID).Update("is_admin", true).Error)

	assert.Equal(t, http.StatusOK, get(r, "/admin", result.Token).Code)
}
