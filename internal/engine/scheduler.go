package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic sync, reconcile and recovery jobs.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that runs service jobs on a schedule.
// recoverInterval also runs the abandoned-sync recovery once at Start.
func NewScheduler(
	svc *Service,
	syncInterval time.Duration,
	reconcileInterval time.Duration,
	recoverInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		service: svc,
		log:     log,
	}

	jobs := []struct {
		every time.Duration
		run   func()
	}{
		{syncInterval, s.runSyncAll},
		{reconcileInterval, s.runReconcile},
		{recoverInterval, s.runRecoverAbandoned},
	}
	for _, j := range jobs {
		if _, err := c.AddFunc("@every "+j.every.String(), j.run); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start closes syncs left open by a previous process, then begins running
// scheduled tasks.
func (s *Scheduler) Start() {
	s.runRecoverAbandoned()
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runSyncAll() {
	ctx := context.Background()
	s.log.Info("scheduled sync starting")
	n, err := s.service.SyncAll(ctx)
	if err != nil {
		s.log.Error("scheduled sync failed", "completed", n, "error", err)
		return
	}
	s.log.Info("scheduled sync finished", "completed", n)
}

func (s *Scheduler) runReconcile() {
	ctx := context.Background()
	if len(s.service.PendingPersists()) == 0 {
		return
	}
	n, err := s.service.Reconcile(ctx)
	if err != nil {
		s.log.Error("scheduled reconcile failed", "written", n, "error", err)
		return
	}
	s.log.Info("scheduled reconcile finished", "written", n)
}

func (s *Scheduler) runRecoverAbandoned() {
	ctx := context.Background()
	if _, err := s.service.RecoverAbandonedSyncs(ctx); err != nil {
		s.log.Error("recovering abandoned syncs failed", "error", err)
	}
}
