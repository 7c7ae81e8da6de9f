package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/catalog-console/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec runs the sweep every five minutes
const DefaultSweepSpec = "*/5 * * * *"

// Sweeper closes editing sessions idle for longer than the given duration
type Sweeper interface {
	Sweep(ctx context.Context, idle time.Duration) int
}

// SessionSweeper 유휴 편집 세션 정리 스케줄러
type SessionSweeper struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
	idleTTL time.Duration
}

// NewSessionSweeper creates the scheduler. An empty spec falls back to
// DefaultSweepSpec.
func NewSessionSweeper(sweeper Sweeper, spec string, idleTTL time.Duration) *SessionSweeper {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	return &SessionSweeper{
		cron:    cron.New(),
		sweeper: sweeper,
		spec:    spec,
		idleTTL: idleTTL,
	}
}

// Start registers the sweep job and starts the cron runner
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		logger.Error("Failed to add cron job for session sweep", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Session sweeper started", map[string]interface{}{
		"spec":     s.spec,
		"idle_ttl": s.idleTTL.String(),
	})
	return nil
}

// RunOnce sweeps immediately and returns the number of sessions closed
func (s *SessionSweeper) RunOnce(ctx context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}
	closed := s.sweeper.Sweep(ctx, s.idleTTL)
	if closed > 0 {
		logger.Info("Idle editing sessions swept", map[string]interface{}{
			"closed": closed,
		})
	}
	return closed
}

// Stop stops the runner and waits for a running sweep to finish
func (s *SessionSweeper) Stop() {
	logger.Info("Stopping session sweeper...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Session sweeper stopped", nil)
}
