// Package scheduler runs the app's recurring maintenance jobs, today just
// the session prune.
package scheduler

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Maintenance owns the background gocron scheduler. Jobs are registered at
// startup, before Start.
type Maintenance struct {
	scheduler gocron.Scheduler
	stopOnce  sync.Once
	stopErr   error
}

// New builds the maintenance scheduler. Job panics are logged, never fatal.
func New() (*Maintenance, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Maintenance job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Maintenance{scheduler: sched}, nil
}

// AddCron registers a recurring job on a standard 5-field cron expression.
func (m *Maintenance) AddCron(name, cronExpr string, task func()) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return ErrEmptyCronExpr
	}

	jobLogger := log.With().Str("job_name", name).Str("cron", cronExpr).Logger()
	wrappedTask := func() {
		jobLogger.Debug().Msg("Maintenance job started")
		task()
		jobLogger.Debug().Msg("Maintenance job completed")
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register maintenance job")
		return err
	}
	jobLogger.Info().Msg("Maintenance job registered")
	return nil
}

// Start begins running registered jobs.
func (m *Maintenance) Start() {
	log.Info().Msg("Maintenance scheduler starting")
	m.scheduler.Start()
}

// Stop shuts the scheduler down. Safe to call more than once.
func (m *Maintenance) Stop() error {
	m.stopOnce.Do(func() {
		log.Info().Msg("Maintenance scheduler stopping")
		m.stopErr = m.scheduler.Shutdown()
	})
	return m.stopErr
}
