package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/badr-lol/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecoveryReturnsGenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logging.InitLogger(&logging.Config{
		File:       filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    10,
		MaxBackups: 1,
		MaxAge:     1,
	})

	router := gin.New()
	router.Use(Recovery())
	router.POST("/contact", func(c *gin.Context) {
		panic("smtp relay exploded")
	})

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, w.Body.String())
}
