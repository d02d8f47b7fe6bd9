package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger is anything that can report database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthMonitor remembers the outcome of the last database probe.
type HealthMonitor struct {
	db      Pinger
	log     logrus.FieldLogger
	timeout time.Duration
	healthy atomic.Bool
	probed  atomic.Bool
}

func NewHealthMonitor(db Pinger, log logrus.FieldLogger) *HealthMonitor {
	return &HealthMonitor{db: db, log: log, timeout: 5 * time.Second}
}

// Probe pings the database and records the result, logging on transitions.
func (m *HealthMonitor) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.db.Ping(ctx)
	healthy := err == nil
	was := m.healthy.Swap(healthy)
	first := !m.probed.Swap(true)

	switch {
	case !healthy && (was || first):
		m.log.WithError(err).Error("Database health probe failed")
	case healthy && !was && !first:
		m.log.Info("Database reachable again")
	}
	return healthy
}

// Healthy reports the last probe result. It is false until the first probe.
func (m *HealthMonitor) Healthy() bool {
	return m.healthy.Load()
}

// Schedule registers the probe on the scheduler at the given interval.
func (m *HealthMonitor) Schedule(s *SchedulerService, interval time.Duration) error {
	_, err := s.ScheduleInterval(interval, func() {
		m.Probe(context.Background())
	})
	return err
}
