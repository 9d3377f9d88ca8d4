package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
)

// Feed delivers one user's change events until closed.
type Feed interface {
	Events() <-chan models.ChangeEvent
	Close()
}

// Subscription is a live feed of one user's change events. Events is closed
// when the subscription ends; callers re-fetch on each event and reconnect
// after closure.
type Subscription struct {
	events <-chan models.ChangeEvent
	cancel context.CancelFunc
	done   <-chan struct{}
}

// Events returns the feed.
func (s *Subscription) Events() <-chan models.ChangeEvent {
	return s.events
}

// Close ends the subscription and waits for the feed to drain.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// Subscriber opens per-user Redis subscriptions.
type Subscriber struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewSubscriber builds a subscriber reading channels under prefix.
func NewSubscriber(client *redis.Client, prefix string, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{client: client, prefix: prefix, logger: logger}
}

// Subscribe starts listening for userID's change events.
func (s *Subscriber) Subscribe(ctx context.Context, userID string) (Feed, error) {
	channel := UserChannel(s.prefix, userID)
	ps := s.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan models.ChangeEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { _ = ps.Close() }()
		pump(ctx, ps.Channel(), out, s.logger.With(zap.String("channel", channel)))
	}()

	return &Subscription{events: out, cancel: cancel, done: done}, nil
}

// pump decodes messages from in until ctx ends or in closes, then closes out.
func pump(ctx context.Context, in <-chan *redis.Message, out chan<- models.ChangeEvent, logger *zap.Logger) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			var event models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("skip malformed change event", zap.Error(err))
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
