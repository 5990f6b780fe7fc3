package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"username": "ann"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Successful!", body["statusText"])
	assert.Equal(t, "ann", body["data"].(map[string]interface{})["username"])
	assert.NotContains(t, body, "message")
}

func TestFailEnvelopeWithString(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, http.StatusNotFound, "The route can not be found!")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed!", body["statusText"])
	assert.Equal(t, "The route can not be found!", body["message"])
	assert.NotContains(t, body, "data")
}

func TestFailEnvelopeWithFieldMap(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, http.StatusBadRequest, map[string]string{"email": "Email must be a valid email address!"})

	body := decodeBody(t, w)
	fields := body["message"].(map[string]interface{})
	assert.Equal(t, "Email must be a valid email address!", fields["email"])
}

func TestSuccessWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMessage(c, "Episode has been deleted", nil)

	body := decodeBody(t, w)
	assert.Equal(t, "Successful!", body["statusText"])
	assert.Equal(t, "Episode has been deleted", body["message"])
}
