package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"comment-scraper/shared/config"
	"comment-scraper/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// JobEvents provides callbacks for monitoring job execution
type JobEvents struct {
	OnSuccess         func(summary string, duration time.Duration)
	OnPartialFailure  func(err error, duration time.Duration)
	OnCriticalFailure func(err error, duration time.Duration)
}

// Job defines the interface for scheduled work
type Job interface {
	Name() string
	RunOnce(ctx context.Context, events *JobEvents) error
	Initialize() error
}

// Scheduler manages the execution of a job on a cron schedule
type Scheduler struct {
	config  *config.Config
	monitor *monitoring.Monitor
	job     Job
	cron    *cron.Cron
}

func New(cfg *config.Config, job Job) *Scheduler {
	m := monitoring.NewMonitor()

	return &Scheduler{
		config:  cfg,
		monitor: m,
		job:     job,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.job.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize job: %w", err)
	}

	// Start health check server (configurable via config, defaults to 8080)
	healthServer := monitoring.NewHealthServer(s.monitor, fmt.Sprintf("%d", s.config.Watch.HealthPort))
	healthServer.Start()

	_, err := s.cron.AddFunc(s.config.Watch.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.job.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.job.Name(), s.config.Watch.Schedule)
	s.cron.Start()

	// Keep the scheduler running indefinitely until context is cancelled
	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.job.Name())
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	jobName := s.job.Name()

	log.Printf("Starting %s run...", jobName)

	// Create event handlers for monitoring
	events := &JobEvents{
		OnSuccess: func(summary string, duration time.Duration) {
			s.monitor.RecordSuccess(summary, duration)
		},
		OnPartialFailure: func(err error, duration time.Duration) {
			s.monitor.RecordPartialFailure(fmt.Errorf("%s partial failure: %w", jobName, err), duration)
		},
		OnCriticalFailure: func(err error, duration time.Duration) {
			s.monitor.RecordCriticalFailure(fmt.Errorf("%s critical failure: %w", jobName, err), duration)
		},
	}

	if err := s.job.RunOnce(ctx, events); err != nil {
		duration := time.Since(startTime)
		s.monitor.RecordCriticalFailure(fmt.Errorf("%s failed: %w", jobName, err), duration)
		return fmt.Errorf("%s run failed: %w", jobName, err)
	}

	return nil
}
