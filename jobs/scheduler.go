// Package jobs runs the background sweeps on cron schedules.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/models"
	"hotel-backoffice/services"
)

type DailyReporter interface {
	Daily(ctx context.Context, day time.Time) (services.RevenueReport, error)
}

type OverdueLister interface {
	Overdue(ctx context.Context, now time.Time) ([]models.Stay, error)
}

// Observer is told about each run; metrics.Metrics implements it.
type Observer interface {
	JobRun(job string, err error)
	SetOverdueStays(n int)
}

type Scheduler struct {
	cron     *cron.Cron
	reports  DailyReporter
	stays    OverdueLister
	observer Observer
	log      *logrus.Entry
	now      func() time.Time
	timeout  time.Duration
}

func NewScheduler(reports DailyReporter, stays OverdueLister, observer Observer, log *logrus.Entry) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		reports:  reports,
		stays:    stays,
		observer: observer,
		log:      log,
		now:      time.Now,
		timeout:  2 * time.Minute,
	}
}

// Register adds both jobs. Specs carry a seconds field; an empty spec
// disables that job.
func (s *Scheduler) Register(reportSpec, overdueSpec string) error {
	if reportSpec != "" {
		if _, err := s.cron.AddFunc(reportSpec, func() { s.run("daily_report", s.DailyReport) }); err != nil {
			return err
		}
	}
	if overdueSpec != "" {
		if _, err := s.cron.AddFunc(overdueSpec, func() { s.run("overdue_stays", s.OverdueStays) }); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run(name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	err := fn(ctx)
	if err != nil {
		s.log.WithError(err).WithField("job", name).Error("job failed")
	}
	if s.observer != nil {
		s.observer.JobRun(name, err)
	}
}

// DailyReport logs the revenue summary of the previous day.
func (s *Scheduler) DailyReport(ctx context.Context) error {
	day := s.now().AddDate(0, 0, -1)
	rep, err := s.reports.Daily(ctx, day)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"day":     day.Format("2006-01-02"),
		"bills":   rep.BillCount,
		"revenue": rep.TotalRevenue.StringFixed(2),
		"paid":    rep.TotalPaid.StringFixed(2),
		"pending": rep.Pending.StringFixed(2),
	}).Info("daily revenue")
	return nil
}

// OverdueStays warns about open stays past their expected checkout.
func (s *Scheduler) OverdueStays(ctx context.Context) error {
	stays, err := s.stays.Overdue(ctx, s.now())
	if err != nil {
		return err
	}
	for _, st := range stays {
		s.log.WithFields(logrus.Fields{
			"stay_id":  st.ID,
			"room":     st.Room.RoomNumber,
			"guest":    st.Guest.Name,
			"expected": st.ExpectedCheckOut.Format(time.RFC3339),
		}).Warn("stay overdue for checkout")
	}
	if s.observer != nil {
		s.observer.SetOverdueStays(len(stays))
	}
	return nil
}
