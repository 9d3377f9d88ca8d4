package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/models"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/config"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/jobs"
)

const jobTypeChangeEvent = "change_event"

type deliveryRecorder interface {
	RecordNotification(delivered bool)
}

type delivery struct {
	Channel string
	Event   models.ChangeEvent
}

// Publisher fans change events out to each participant's channel through a
// retrying worker queue, so that callers never wait on Redis. Events that
// find the queue full are dropped.
type Publisher struct {
	broker  Broker
	queue   *jobs.Queue
	prefix  string
	metrics deliveryRecorder
	logger  *zap.Logger
}

// NewPublisher builds a publisher. Call Start before Notify.
func NewPublisher(broker Broker, cfg config.NotificationsConfig, metrics deliveryRecorder, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{
		broker:  broker,
		prefix:  cfg.ChannelPrefix,
		metrics: metrics,
		logger:  logger,
	}
	p.queue = jobs.NewQueue("notifications", p.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: 200 * time.Millisecond,
		Logger:     logger,
	})
	return p
}

// Start launches the delivery workers.
func (p *Publisher) Start(ctx context.Context) {
	p.queue.Start(ctx)
}

// Stop waits for the workers to exit. Undelivered events are dropped.
func (p *Publisher) Stop() {
	p.queue.Stop()
}

// Notify schedules event for the booking's parent and tutor.
func (p *Publisher) Notify(_ context.Context, event models.ChangeEvent) {
	for _, userID := range recipients(event) {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    jobTypeChangeEvent,
			Payload: delivery{Channel: UserChannel(p.prefix, userID), Event: event},
		}
		if err := p.queue.TryEnqueue(job); err != nil {
			p.record(false)
			p.logger.Warn("drop change event", zap.String("booking_id", event.BookingID), zap.String("type", string(event.Type)), zap.Error(err))
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, job jobs.Job) error {
	d, ok := job.Payload.(delivery)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	payload, err := json.Marshal(d.Event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := p.broker.Publish(ctx, d.Channel, payload); err != nil {
		if job.Attempt >= p.queue.MaxRetries() {
			p.record(false)
		}
		return err
	}
	p.record(true)
	return nil
}

func (p *Publisher) record(delivered bool) {
	if p.metrics != nil {
		p.metrics.RecordNotification(delivered)
	}
}

func recipients(event models.ChangeEvent) []string {
	out := make([]string, 0, 2)
	if event.ParentID != "" {
		out = append(out, event.ParentID)
	}
	if event.TeacherID != "" && event.TeacherID != event.ParentID {
		out = append(out, event.TeacherID)
	}
	return out
}
