// workers/pool_monitor.go
package workers

import (
	"database/sql"
	"time"

	"runonstreet-backend/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PoolStatser is the slice of the store the monitor needs.
type PoolStatser interface {
	PoolStats() (sql.DBStats, error)
}

// PoolMonitor periodically logs connection-pool usage and mirrors it into
// the pool gauges.
type PoolMonitor struct {
	source   PoolStatser
	interval time.Duration
	sched    gocron.Scheduler
}

func NewPoolMonitor(source PoolStatser, interval time.Duration) *PoolMonitor {
	return &PoolMonitor{source: source, interval: interval}
}

// Start schedules the job. An interval of zero or less leaves the monitor off.
func (m *PoolMonitor) Start() error {
	if m.interval <= 0 {
		log.Info().Msg("[POOL] monitor disabled")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "failed to create pool monitor scheduler")
	}
	_, err = sched.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(func() {
			if _, err := m.Collect(); err != nil {
				log.Warn().Err(err).Msg("[POOL] failed to read pool stats")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return errors.Wrap(err, "failed to schedule pool monitor")
	}

	sched.Start()
	m.sched = sched
	log.Info().Dur("interval", m.interval).Msg("[POOL] monitor started")
	return nil
}

// Collect reads the pool stats once, updates the gauges and logs them.
func (m *PoolMonitor) Collect() (sql.DBStats, error) {
	stats, err := m.source.PoolStats()
	if err != nil {
		return stats, err
	}

	metrics.PoolOpenConnections.Set(float64(stats.OpenConnections))
	metrics.PoolInUse.Set(float64(stats.InUse))

	log.Info().
		Int("open", stats.OpenConnections).
		Int("in_use", stats.InUse).
		Int("idle", stats.Idle).
		Int64("wait_count", stats.WaitCount).
		Dur("wait_duration", stats.WaitDuration).
		Msg("[POOL] stats")
	return stats, nil
}

func (m *PoolMonitor) Stop() {
	if m.sched == nil {
		return
	}
	if err := m.sched.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("[POOL] scheduler shutdown")
	}
	m.sched = nil
}
