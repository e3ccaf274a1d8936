// Package scheduler runs periodic maintenance jobs in-process
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// MaintenanceRunner is the interface that wraps the periodic maintenance jobs
type MaintenanceRunner interface {
	// Method ResetWeeklyXP zeroes every user's weekly XP counter.
	//
	// Returns the number of users affected.
	// If some error occurs during reset, the error will be returned together with "0" value.
	ResetWeeklyXP(ctx context.Context) (int64, error)
	// Method CleanExpiredTokens removes refresh tokens old enough to have expired.
	//
	// Returns the number of tokens removed.
	// If some error occurs during removal, the error will be returned together with "0" value.
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler drives the weekly leaderboard reset and the expired token cleanup
// on cron schedules. The maintenance endpoints stay available as manual
// triggers for the same jobs.
type Scheduler struct {
	cron   *cron.Cron
	svc    MaintenanceRunner
	logger *zap.Logger
}

// NewScheduler creates a scheduler with both maintenance jobs registered.
// Schedules are standard five-field cron expressions evaluated in UTC.
func NewScheduler(svc MaintenanceRunner, weeklyResetSpec, tokenCleanupSpec string, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		svc:    svc,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(weeklyResetSpec, s.runWeeklyReset); err != nil {
		return nil, fmt.Errorf("invalid weekly reset schedule: %w", err)
	}
	if _, err := s.cron.AddFunc(tokenCleanupSpec, s.runTokenCleanup); err != nil {
		return nil, fmt.Errorf("invalid token cleanup schedule: %w", err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Maintenance scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Maintenance scheduler stopped")
}

func (s *Scheduler) runWeeklyReset() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.svc.ResetWeeklyXP(ctx); err != nil {
		s.logger.Error("Scheduled weekly xp reset failed", zap.Error(err))
	}
}

func (s *Scheduler) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.svc.CleanExpiredTokens(ctx); err != nil {
		s.logger.Error("Scheduled token cleanup failed", zap.Error(err))
	}
}
