package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newPermissionRouter(permission string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set("role", role)
		}
	})
	router.GET("/guarded", RequirePermission(permission), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func requestAs(router *gin.Engine, role string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequirePermissionAdminOnly(t *testing.T) {
	router := newPermissionRouter("system:admin")

	assert.Equal(t, http.StatusOK, requestAs(router, "admin").Code)
	assert.Equal(t, http.StatusForbidden, requestAs(router, "doctor").Code)
	assert.Equal(t, http.StatusForbidden, requestAs(router, "student").Code)

	// No role in the context at all.
	assert.Equal(t, http.StatusForbidden, requestAs(router, "").Code)
}

func TestRequirePermissionSharedPermission(t *testing.T) {
	router := newPermissionRouter("cases:read")

	assert.Equal(t, http.StatusOK, requestAs(router, "admin").Code)
	assert.Equal(t, http.StatusOK, requestAs(router, "doctor").Code)
	assert.Equal(t, http.StatusOK, requestAs(router, "student").Code)
	assert.Equal(t, http.StatusForbidden, requestAs(router, "ghost").Code)
}
