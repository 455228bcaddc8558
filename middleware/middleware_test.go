package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

var secret = []byte("test-secret")

func init() { gin.SetMode(gin.TestMode) }

func bearer(t *testing.T, role string, now time.Time) string {
	t.Helper()
	tok, err := utils.GenerateToken(secret, 7, "desk@hotel.test", role, now)
	require.NoError(t, err)
	return "Bearer " + tok
}

func protected(roles ...string) *gin.Engine {
	r := gin.New()
	r.Use(AuthJWT(secret))
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c)})
	})
	r.GET("/gated", RequireRoles(roles...), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func serve(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT(t *testing.T) {
	r := protected()
	now := time.Now()

	w := serve(r, "/open", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Authentication required"}`, w.Body.String())

	w = serve(r, "/open", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "/open", bearer(t, models.RoleFrontDesk, now.Add(-8*24*time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "expired token")

	w = serve(r, "/open", bearer(t, models.RoleFrontDesk, now))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	r := protected(models.RoleAccountant)
	now := time.Now()

	assert.Equal(t, http.StatusForbidden, serve(r, "/gated", bearer(t, models.RoleFrontDesk, now)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/gated", bearer(t, models.RoleAccountant, now)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/gated", bearer(t, models.RoleAdmin, now)).Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/x", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/x", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/x", "").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }
	rl.limiter("10.0.0.1")
	now = now.Add(time.Hour)
	rl.limiter("10.0.0.2")

	rl.Cleanup(30 * time.Minute)
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestLoggerSetsRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(Logger(log))
	r.GET("/x", func(c *gin.Context) {
		utils.Log(c).Info("inside")
		c.Status(http.StatusTeapot)
	})

	w := serve(r, "/x", "")
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, id, hook.Entries[0].Data["request_id"])
	last := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, http.StatusTeapot, last.Data["status"])
}
