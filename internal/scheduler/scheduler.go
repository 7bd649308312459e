// Package scheduler manages background maintenance jobs using gocron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rasben/openai-zulip/internal/config"
	"github.com/rasben/openai-zulip/internal/database"
)

// Scheduler runs the periodic database maintenance job.
type Scheduler struct {
	scheduler gocron.Scheduler
	cfg       config.SchedulerConfig
	store     database.Store
	log       *slog.Logger
}

// New creates a scheduler instance. Jobs are registered on Start.
func New(cfg config.SchedulerConfig, store database.Store, log *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		cfg:       cfg,
		store:     store,
		log:       log.With("component", "scheduler"),
	}, nil
}

// Start schedules the enabled jobs and starts the scheduler's ticking.
func (s *Scheduler) Start() error {
	if !s.cfg.MaintenanceEnabled {
		s.log.Info("Database maintenance job disabled")
		s.scheduler.Start()
		return nil
	}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(s.cfg.MaintenanceSchedule, true),
		gocron.NewTask(func(ctx context.Context) {
			s.log.Info("Running scheduled task", "task_name", "sql_maintenance")
			startTime := time.Now()
			if taskErr := s.store.RunMaintenance(ctx); taskErr != nil {
				s.log.Error("Scheduled task failed", "task_name", "sql_maintenance", "error", taskErr)
			}
			s.log.Info("Finished scheduled task", "task_name", "sql_maintenance", "duration", time.Since(startTime))
		}, context.Background()),
		gocron.WithName("sql_maintenance"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance task: %w", err)
	}

	s.scheduler.Start()
	s.log.Info("Scheduler started", "maintenance_schedule", s.cfg.MaintenanceSchedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		s.log.Error("Error during scheduler shutdown", "error", err)
		return err
	}
	s.log.Info("Scheduler stopped gracefully.")
	return nil
}
