package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backoffice/models"
	"hotel-backoffice/services"
)

type fakeReports struct {
	day time.Time
	err error
}

func (f *fakeReports) Daily(_ context.Context, day time.Time) (services.RevenueReport, error) {
	f.day = day
	return services.RevenueReport{BillCount: 2, TotalRevenue: decimal.NewFromInt(10500)}, f.err
}

type fakeStays struct{ stays []models.Stay }

func (f fakeStays) Overdue(context.Context, time.Time) ([]models.Stay, error) { return f.stays, nil }

type fakeObserver struct {
	runs    map[string]error
	overdue int
}

func (o *fakeObserver) JobRun(job string, err error) { o.runs[job] = err }
func (o *fakeObserver) SetOverdueStays(n int)        { o.overdue = n }

func newScheduler(r DailyReporter, s OverdueLister) (*Scheduler, *fakeObserver, *test.Hook) {
	log, hook := test.NewNullLogger()
	obs := &fakeObserver{runs: map[string]error{}}
	sc := NewScheduler(r, s, obs, logrus.NewEntry(log))
	sc.now = func() time.Time { return time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC) }
	return sc, obs, hook
}

func TestDailyReportCoversYesterday(t *testing.T) {
	reports := &fakeReports{}
	sc, obs, hook := newScheduler(reports, fakeStays{})

	sc.run("daily_report", sc.DailyReport)

	assert.Equal(t, "2025-06-01", reports.day.Format("2006-01-02"))
	assert.NoError(t, obs.runs["daily_report"])
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "10500.00", hook.LastEntry().Data["revenue"])
}

func TestFailedJobIsObserved(t *testing.T) {
	sc, obs, hook := newScheduler(&fakeReports{err: errors.New("db down")}, fakeStays{})
	sc.run("daily_report", sc.DailyReport)
	assert.Error(t, obs.runs["daily_report"])
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestOverdueStays(t *testing.T) {
	stays := fakeStays{stays: []models.Stay{{ID: 3}, {ID: 4}}}
	sc, obs, hook := newScheduler(&fakeReports{}, stays)

	require.NoError(t, sc.OverdueStays(context.Background()))
	assert.Equal(t, 2, obs.overdue)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	sc, _, _ := newScheduler(&fakeReports{}, fakeStays{})
	assert.Error(t, sc.Register("not a cron", ""))
	assert.NoError(t, sc.Register("0 5 0 * * *", "0 */15 * * * *"))
}
