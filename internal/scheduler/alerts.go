// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"job-portal/internal/logger"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const runTimeout = 2 * time.Minute

type AlertRunner interface {
	RunAlerts(ctx context.Context, now time.Time) (int, error)
}

// AlertScheduler fires the job alert scan on a cron schedule. Overlapping
// runs are skipped.
type AlertScheduler struct {
	runner AlertRunner
	cron   *cron.Cron
	log    log.FieldLogger
	now    func() time.Time

	mu      sync.Mutex
	running bool
}

func NewAlertScheduler(runner AlertRunner, schedule string, l log.FieldLogger) (*AlertScheduler, error) {
	if runner == nil {
		return nil, errors.New("alert runner is required")
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, errors.New("alert schedule is empty")
	}
	if l == nil {
		l = logger.Discard()
	}

	s := &AlertScheduler{
		runner: runner,
		cron:   cron.New(),
		log:    l.WithField("component", "alert_scheduler"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, errors.Wrapf(err, "invalid alert schedule %q", schedule)
	}
	return s, nil
}

func (s *AlertScheduler) Start() {
	s.cron.Start()
	s.log.Info("alert scheduler started")
}

// Stop halts the schedule and waits for a running scan to finish or ctx to end.
func (s *AlertScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("alert scheduler stop timed out")
	}
}

func (s *AlertScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = s.RunOnce(ctx)
}

// RunOnce performs a single scan unless one is already in flight.
func (s *AlertScheduler) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Debug("alert scan already running, skipping")
		return 0, nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := s.now()
	sent, err := s.runner.RunAlerts(ctx, start)
	if err != nil {
		s.log.WithField(logger.ErrorTypeField, logger.ErrorTypeAlerts).WithError(err).Error("alert scan failed")
		return sent, errors.Wrap(err, "run alerts")
	}
	s.log.WithFields(log.Fields{
		"notifications": sent,
		"took":          time.Since(start).String(),
	}).Info("alert scan finished")
	return sent, nil
}
