package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"hotel-backoffice/billing"
)

func TestRecorderCounters(t *testing.T) {
	m := New()
	m.BillOpened()
	m.BillOpened()
	m.StayClosed(true)
	m.LineItemAdded(billing.ItemFood)
	m.PaymentRecorded(billing.MethodCash)
	m.JobRun("overdue_stays", errors.New("boom"))
	m.SetOverdueStays(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.billsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staysClosed.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.staysClosed.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lineItems.WithLabelValues("FOOD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("CASH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("overdue_stays", "false")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.overdueStays))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/bills/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bills/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/bills/:id", "204")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotel_backoffice_http_requests_total")
}
