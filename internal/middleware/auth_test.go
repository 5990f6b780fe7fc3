package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorTranslator())
	r.Use(mw...)
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":  CurrentUserID(c),
			"role":    CurrentRole(c),
			"guestId": GuestID(c),
		})
	})
	return r
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := GenerateToken(42, "public", testSecret, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(RequireAuth(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"role":"public"`)
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized!!")
	assert.Contains(t, w.Body.String(), "Failed!")
}

func TestRequireAuthBadToken(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, "public", testSecret, -time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(RequireAuth(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "public", "other-secret", time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(RequireAuth(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionalAuthDegradesToAnonymous(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":0`)
}

func TestRequireAdmin(t *testing.T) {
	adminToken, err := GenerateToken(1, "admin", testSecret, time.Hour)
	require.NoError(t, err)
	publicToken, err := GenerateToken(2, "public", testSecret, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(RequireAuth(testSecret), RequireAdmin())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+publicToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}

func TestGuestMintsCookie(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret), Guest())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, GuestCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.Contains(t, w.Body.String(), `"guestId":"`+cookies[0].Value+`"`)
}

func TestGuestReusesCookie(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret), Guest())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: GuestCookieName, Value: "existing-guest"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guestId":"existing-guest"`)
	// 已有 Cookie 时不重复下发
	assert.Empty(t, w.Result().Cookies())
}

func TestGuestIdentityEqualsUserWhenLoggedIn(t *testing.T) {
	token, err := GenerateToken(7, "public", testSecret, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(OptionalAuth(testSecret), Guest())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: GuestCookieName, Value: "stale-guest"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guestId":"`+strconv.Itoa(7)+`"`)
}
