package scheduler

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Pruner deletes run-log entries older than a cutoff
type Pruner interface {
	PruneRunsBefore(cutoff time.Time) (int64, error)
}

// Scheduler runs the run-log retention job on a cron schedule
type Scheduler struct {
	pruner    Pruner
	retention time.Duration
	schedule  string
	logger    *logrus.Logger
	cron      *cron.Cron
	now       func() time.Time
	jobMutex  sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler. The schedule uses the standard cron
// syntax or a descriptor such as "@daily".
func NewScheduler(pruner Pruner, retention time.Duration, schedule string, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		pruner:    pruner,
		retention: retention,
		schedule:  schedule,
		logger:    logger,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the prune job and begins the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runPrune); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.WithFields(logrus.Fields{
		"schedule":  s.schedule,
		"retention": s.retention.String(),
	}).Info("Run log pruning scheduled")
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runPrune removes runs older than the retention window
func (s *Scheduler) runPrune() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	cutoff := s.now().UTC().Add(-s.retention)
	removed, err := s.pruner.PruneRunsBefore(cutoff)
	if err != nil {
		s.logger.WithError(err).WithField("cutoff", cutoff).Error("Run log pruning failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"cutoff":  cutoff,
		"removed": removed,
	}).Info("Run log pruning completed")
}
