package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(environment, allowedOrigins string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(environment, allowedOrigins))
	router.POST("/contact", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORSDevelopmentEchoesAnyOrigin(t *testing.T) {
	router := newCORSRouter("development", "https://badr.lol")

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSProductionAllowsListedOrigin(t *testing.T) {
	router := newCORSRouter("production", "https://badr.lol, https://www.badr.lol")

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("Origin", "https://badr.lol")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://badr.lol", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSProductionRejectsUnlistedOrigin(t *testing.T) {
	router := newCORSRouter("production", "https://badr.lol")

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	router := newCORSRouter("development", "")

	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "POST, OPTIONS, GET", w.Header().Get("Access-Control-Allow-Methods"))
}
