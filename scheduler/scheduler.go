/* scheduler.go
 * Contains the background job that keeps the cached leaderboard fresh between chat commands
 */

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"pickems-tracker/api/shared"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// Recomputer is the part of the api the scheduler drives
type Recomputer interface {
	RecomputeScores(ctx context.Context) ([]shared.Score, error)
}

// Scheduler periodically recomputes every user's score
type Scheduler struct {
	recomputer Recomputer
	interval   time.Duration
	sched      gocron.Scheduler
	ctx        context.Context
	runs       atomic.Int64
}

// New creates a scheduler that recomputes scores every interval.
// Preconditions: Receives a non-nil Recomputer and a positive interval
// Postconditions: Returns a scheduler with its job registered but not yet started
func New(r Recomputer, interval time.Duration) (*Scheduler, error) {
	if r == nil {
		return nil, fmt.Errorf("recomputer is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{recomputer: r, interval: interval, sched: sched, ctx: context.Background()}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.Tick(s.ctx) }),
		gocron.WithName("recompute-scores"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to register recompute job: %w", err), sched.Shutdown())
	}
	return s, nil
}

// Start runs the job in the background until Stop is called. ctx is passed to every recomputation
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.sched.Start()
	log.Info("Leaderboard scheduler started", "interval", s.interval)
}

// Stop waits for a running recomputation to finish and stops the scheduler
func (s *Scheduler) Stop() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	log.Info("Leaderboard scheduler stopped", "runs", s.Runs())
	return nil
}

// Tick performs one recomputation. A missing stage multiplier is logged and retried on the next tick
func (s *Scheduler) Tick(ctx context.Context) {
	s.runs.Add(1)

	scores, err := s.recomputer.RecomputeScores(ctx)
	var lookupErr *shared.LookupError
	switch {
	case errors.As(err, &lookupErr):
		log.Warn("Scheduled recomputation skipped", "match", lookupErr.MatchNumber, "stage", lookupErr.Stage)
	case err != nil:
		log.Error("Scheduled recomputation failed", "error", err)
	default:
		log.Debug("Scheduled recomputation finished", "users", len(scores))
	}
}

// Runs returns how many recomputations have been attempted
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}
