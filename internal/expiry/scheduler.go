package expiry

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler triggers one scan per calendar day at a fixed hour, so the
// service notifies even when no external cron hits the HTTP endpoint.
type Scheduler struct {
	mu       sync.RWMutex
	service  *Service
	hour     int
	loc      *time.Location
	interval time.Duration
	lastRun  string
	now      func() time.Time
	onResult func(Result)
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a scan scheduler firing at the given local hour.
// onResult may be nil; when set it receives every completed scan's result.
func NewScheduler(svc *Service, hour int, loc *time.Location, onResult func(Result), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:  svc,
		hour:     hour,
		loc:      loc,
		interval: 60 * time.Second,
		now:      time.Now,
		onResult: onResult,
		logger:   logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now().In(s.loc)
	if now.Hour() != s.hour {
		return
	}

	day := now.Format("2006-01-02")
	s.mu.Lock()
	if s.lastRun == day {
		s.mu.Unlock()
		return
	}
	s.lastRun = day
	s.mu.Unlock()

	result, err := s.service.Run(ctx, now)
	if err != nil {
		s.logger.Error("scheduled expiry scan failed", "error", err)
		return
	}
	if s.onResult != nil {
		s.onResult(result)
	}
}
