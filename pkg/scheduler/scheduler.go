package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"taskmaster/pkg/logger"
)

type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	NextRun(id string) (time.Time, bool)
	IsRunning() bool
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*gocron.Job
	mu        sync.RWMutex
	running   bool
}

// NewEventScheduler runs jobs in UTC; a job never overlaps with itself.
func NewEventScheduler() EventScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &GocronScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]*gocron.Job),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Info("Scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		start := time.Now()
		logger.Debug("Executing job", "job_id", id)
		task()
		logger.Debug("Job finished", "job_id", id, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	s.jobs[id] = job
	logger.Info("Job added", "job_id", id, "cron", cronExpr, "next_run", job.NextRun())
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(job)
	delete(s.jobs, id)
	logger.Info("Job removed", "job_id", id)
	return nil
}

func (s *GocronScheduler) NextRun(id string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return time.Time{}, false
	}
	return job.NextRun(), true
}

func ValidateCronExpression(cronExpr string) error {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
