// Package jobs schedules the background work this backend owns: the nightly
// diet-analysis sweep.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/logger"
	"github.com/JNU-econovation/EATceed-AI/services"
)

// runTimeout bounds a single sweep so a hung external call cannot stall the
// scheduler forever.
const runTimeout = 30 * time.Minute

// AnalysisScheduler fires the analysis sweep once a day at a fixed local hour.
type AnalysisScheduler struct {
	analysis *services.AnalysisService
	hour     int
}

func NewAnalysisScheduler(analysis *services.AnalysisService, hour int) *AnalysisScheduler {
	return &AnalysisScheduler{analysis: analysis, hour: hour}
}

// Start launches the scheduling loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *AnalysisScheduler) Start(ctx context.Context) {
	go s.run(ctx)
	logger.Info("analysis scheduler started", zap.Int("hour", s.hour))
}

func (s *AnalysisScheduler) run(ctx context.Context) {
	for {
		next := s.nextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("analysis scheduler stopped")
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		if err := s.analysis.RunForAllMembers(runCtx); err != nil {
			logger.Error("analysis sweep failed", zap.Error(err))
		}
		cancel()
	}
}

// nextRun returns the next occurrence of the configured hour after now.
func (s *AnalysisScheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
