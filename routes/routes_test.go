package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/metrics"
	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

var secret = []byte("routes-secret")

func router(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	return SetupRouter(Handlers{}, Options{
		JWTSecret:   secret,
		CORSOrigins: []string{"*"},
		Logger:      log,
		Metrics:     metrics.New(),
	})
}

func get(r http.Handler, path, role string, t *testing.T) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		tok, err := utils.GenerateToken(secret, 1, "u@hotel.test", role, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestPublicEndpoints(t *testing.T) {
	r := router(t)
	assert.Equal(t, http.StatusOK, get(r, "/health", "", t))
	assert.Equal(t, http.StatusOK, get(r, "/metrics", "", t))
}

func TestRoleGates(t *testing.T) {
	r := router(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/bills", "", t))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/users", models.RoleFrontDesk, t))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/users", models.RoleAccountant, t))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/vendors", models.RoleFrontDesk, t))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/reports", models.RoleFrontDesk, t))
	assert.Equal(t, http.StatusForbidden, get(r, "/api/audit-logs", models.RoleAccountant, t))
}
