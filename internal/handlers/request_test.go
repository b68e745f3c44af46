package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

func newTestContext(t *testing.T, method, target, contentType, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c, w
}

func TestBindRawJSON(t *testing.T) {
	c, _ := newTestContext(t, http.MethodPost, "/", "application/json", `{"time":"09:00","duration":30}`)

	raw, ok := bindRaw(c)
	require.True(t, ok)
	assert.Equal(t, "09:00", raw["time"])
	assert.Equal(t, 30.0, raw["duration"])
}

func TestBindRawEmptyBody(t *testing.T) {
	c, _ := newTestContext(t, http.MethodPost, "/", "application/json", "")

	raw, ok := bindRaw(c)
	require.True(t, ok)
	assert.Empty(t, raw)
}

func TestBindRawForm(t *testing.T) {
	c, _ := newTestContext(t, http.MethodPost, "/", "application/x-www-form-urlencoded",
		"serviceId=3&hasAgreedToPolicy=on&time=10%3A30")

	raw, ok := bindRaw(c)
	require.True(t, ok)
	assert.Equal(t, validators.Raw{"serviceId": "3", "hasAgreedToPolicy": "on", "time": "10:30"}, raw)
}

func TestBindRawRejectsMalformedJSON(t *testing.T) {
	c, w := newTestContext(t, http.MethodPost, "/", "application/json", `{"time":`)

	_, ok := bindRaw(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestQueryDate(t *testing.T) {
	loc := timezone.Location("Europe/Bucharest")

	c, _ := newTestContext(t, http.MethodGet, "/?date=2025-03-10", "", "")
	d, err := queryDate(c, "date", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d.Format(timezone.DateLayout))
	assert.Equal(t, 0, d.Hour())

	c, _ = newTestContext(t, http.MethodGet, "/?date=10.03.2025", "", "")
	_, err = queryDate(c, "date", loc)
	assert.Error(t, err)
}

func TestParamID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/", "", "")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.EqualValues(t, 12, id)

	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, ok = paramID(c, "id")
	assert.False(t, ok)
}
