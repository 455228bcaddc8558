package controllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"hotel-backoffice/billing"
	"hotel-backoffice/billing/billingtest"
	"hotel-backoffice/services"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func checkoutRouter(store *billingtest.MemStore) *gin.Engine {
	log, _ := test.NewNullLogger()
	entry := logrus.NewEntry(log)
	engine := billing.NewEngine(store, billing.WithLogger(entry))
	stays := services.NewStayService(nil, engine, entry)
	c := NewCheckInController(stays, nil)

	r := gin.New()
	r.PUT("/api/checkins/:id/checkout", c.CheckOut)
	return r
}

func TestCheckOutUnknownStay(t *testing.T) {
	r := checkoutRouter(billingtest.NewMemStore())
	w := do(r, http.MethodPut, "/api/checkins/9/checkout", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCheckOutTwiceIsConflict(t *testing.T) {
	store := billingtest.NewMemStore()
	room := store.PutRoom(billing.Room{Number: "101", CategoryName: "Single Room"})
	closed := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	stay := store.PutStay(billing.Stay{GuestID: 1, RoomID: room.ID, ActualCheckOut: &closed})

	r := checkoutRouter(store)
	w := do(r, http.MethodPut, "/api/checkins/"+itoa(stay.ID)+"/checkout", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"stay `+itoa(stay.ID)+`: stay already checked out"}`, w.Body.String())
}

func TestCheckOutRejectsBadID(t *testing.T) {
	r := checkoutRouter(billingtest.NewMemStore())
	w := do(r, http.MethodPut, "/api/checkins/abc/checkout", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginValidation(t *testing.T) {
	c := NewAuthController(nil, nil)
	r := gin.New()
	r.POST("/api/auth/login", c.Login)

	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"Validation failed"`)

	w = do(r, http.MethodPost, "/api/auth/login", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentsRequireBillID(t *testing.T) {
	c := NewBillController(nil, nil, nil)
	r := gin.New()
	r.GET("/api/payments", c.Payments)

	w := do(r, http.MethodGet, "/api/payments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"billId is required"}`, w.Body.String())
}

func TestReportRejectsBadInput(t *testing.T) {
	c := NewReportController(nil)
	r := gin.New()
	r.GET("/api/reports", c.Get)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/reports?type=yearly", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/reports?date=06/01/2025", "").Code)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
