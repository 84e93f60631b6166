package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(allowed string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(allowed))
	r.POST("/notifications/send", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSPreflightAnsweredPermissively(t *testing.T) {
	r := newCORSRouter("*")

	req := httptest.NewRequest(http.MethodOptions, "/notifications/send", nil)
	req.Header.Set("Origin", "https://party.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSAllowsListedOriginOnly(t *testing.T) {
	r := newCORSRouter("https://party.example.com")

	req := httptest.NewRequest(http.MethodPost, "/notifications/send", nil)
	req.Header.Set("Origin", "https://party.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://party.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/notifications/send", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
