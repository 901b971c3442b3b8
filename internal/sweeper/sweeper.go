package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"room-lease-backend/config"
	"room-lease-backend/internal/lease"
)

// Sweeper is the scheduled trigger that reconciles lapsed Active contracts
// to Terminated. It holds no state of its own; the batch it drives is
// idempotent, so re-running within the same window terminates nothing the
// second time.
type Sweeper struct {
	cfg       *config.SweeperConfig
	lifecycle *lease.Lifecycle
	cron      *cron.Cron
}

// New creates a sweeper for the given lifecycle manager.
func New(cfg *config.SweeperConfig, lifecycle *lease.Lifecycle) (*Sweeper, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load sweeper timezone %q: %w", cfg.Timezone, err)
	}
	return &Sweeper{
		cfg:       cfg,
		lifecycle: lifecycle,
		cron:      cron.New(cron.WithLocation(loc)),
	}, nil
}

// Start registers the sweep on its schedule and launches the cron runner.
// It returns immediately; Stop halts scheduling.
func (s *Sweeper) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		log.Println("Expiration sweeper is disabled. Not starting.")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Scheduled expiration sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule expiration sweep %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	log.Printf("Expiration sweeper started with schedule %q", s.cfg.Schedule)
	return nil
}

// Stop halts the schedule. Sweeps already running are not interrupted.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// RunOnce performs a single sweep as of now.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	terminated, err := s.lifecycle.TerminateExpiredBatch(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(terminated) > 0 {
		log.Printf("Expiration sweep terminated %d contracts", len(terminated))
	}
	return nil
}
