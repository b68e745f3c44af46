package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/observability/metrics"
)

const secret = "test-secret"

type profiles map[uuid.UUID]models.Profile

func (p profiles) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	prof, ok := p[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &prof, nil
}

func token(t *testing.T, sub string, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newRouter(p profiles) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop(), metrics.NewHTTPMetrics(prometheus.NewRegistry())))

	authed := r.Group("/", AuthMiddleware(secret, p, zap.NewNop()))
	authed.GET("/me", func(c *gin.Context) {
		who, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": who.ID.String(), "admin": who.IsAdmin})
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	r := newRouter(profiles{})

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", errorCode(t, w))

	w = do(r, "/me", token(t, uuid.NewString(), "other-secret"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", errorCode(t, w))

	w = do(r, "/me", token(t, "42", secret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token_payload", errorCode(t, w))
}

func TestAuthResolvesAdminFromProfile(t *testing.T) {
	admin := uuid.New()
	client := uuid.New()
	r := newRouter(profiles{
		admin:  {ID: admin, IsAdmin: true},
		client: {ID: client},
	})

	w := do(r, "/me", token(t, admin.String(), secret))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+admin.String()+`","admin":true}`, w.Body.String())

	assert.Equal(t, http.StatusNoContent, do(r, "/admin", token(t, admin.String(), secret)).Code)

	w = do(r, "/admin", token(t, client.String(), secret))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, httperr.CodeUnauthorized, errorCode(t, w))
}

func TestAuthWithoutProfileIsPlainClient(t *testing.T) {
	id := uuid.New()
	r := newRouter(profiles{})

	w := do(r, "/me", token(t, id.String(), secret))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+id.String()+`","admin":false}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://ora-fixa.ro"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://ora-fixa.ro")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ora-fixa.ro", w.Header().Get("Access-Control-Allow-Origin"))
}
