package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/animew/internal/config"
	"github.com/user/animew/internal/handler"
	"github.com/user/animew/internal/middleware"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.ErrorTranslator())

	h := handler.NewHandler(nil, &config.Config{AppSecret: "test-secret"})
	RegisterRoutes(r, h)
	return r
}

func TestHealthRoute(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestUnknownRoute(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed!", body["statusText"])
	assert.Equal(t, "The route can not be found!", body["message"])
}

func TestAdminRequiresToken(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/admin/anime", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed!", body["statusText"])
	assert.Equal(t, "Unauthorized!!", body["message"])
}

func TestAdminRejectsPublicRole(t *testing.T) {
	r := newTestEngine()

	token, err := middleware.GenerateToken(7, "public", "test-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/admin/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}
