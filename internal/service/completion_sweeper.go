package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type dueCompleter interface {
	CompleteDue(ctx context.Context, limit int) (int, error)
}

// CompletionSweeper periodically completes confirmed bookings whose slot is
// over.
type CompletionSweeper struct {
	bookings  dueCompleter
	interval  time.Duration
	batchSize int
	logger    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCompletionSweeper builds a sweeper. A non-positive interval disables it.
func NewCompletionSweeper(bookings dueCompleter, interval time.Duration, logger *zap.Logger) *CompletionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompletionSweeper{bookings: bookings, interval: interval, batchSize: 200, logger: logger.Named("sweeper")}
}

// Start runs the loop until ctx ends or Stop is called.
func (s *CompletionSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("booking auto-completion disabled")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	s.logger.Info("booking auto-completion started", zap.Duration("interval", s.interval))
}

// Stop ends the loop and waits for an in-flight sweep.
func (s *CompletionSweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *CompletionSweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass.
func (s *CompletionSweeper) Sweep(ctx context.Context) {
	n, err := s.bookings.CompleteDue(ctx, s.batchSize)
	if err != nil {
		s.logger.Warn("sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("bookings auto-completed", zap.Int("count", n))
	}
}
