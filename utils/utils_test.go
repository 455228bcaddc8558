package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
)

func init() { gin.SetMode(gin.TestMode) }

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{billing.Validation("op", "bad"), http.StatusBadRequest},
		{billing.NotFound("op", "bill", 1), http.StatusNotFound},
		{billing.AlreadyClosed("op", 1), http.StatusConflict},
		{billing.Conflict("op", "dup"), http.StatusConflict},
		{fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func respond(err error) (int, map[string]any) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestRespondError(t *testing.T) {
	code, body := respond(billing.AlreadyClosed("billing.close", 4))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "stay 4: stay already checked out", body["error"])

	code, body = respond(billing.NotFound("billing.add_charge", "bill", 9))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "bill 9 not found", body["error"])

	code, body = respond(billing.Internal("op", errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.True(t, IsDuplicateKey(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateKey(errors.New("Duplicate entry")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	now := time.Now()
	raw, err := GenerateToken(secret, 12, "desk@hotel.local", "FRONTDESK", now)
	require.NoError(t, err)

	claims, err := ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "FRONTDESK", claims.Role)
	assert.WithinDuration(t, now.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)

	_, err = ParseToken([]byte("other"), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken(secret, 12, "desk@hotel.local", "FRONTDESK", now.Add(-8*24*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBindJSONReportsFields(t *testing.T) {
	type body struct {
		Email string `json:"email" binding:"required,email"`
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var b body
	assert.False(t, BindJSON(c, &b))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Validation failed","fields":{"Email":"email"}}`, w.Body.String())
}

func TestParamID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := ParamID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = ParamID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
