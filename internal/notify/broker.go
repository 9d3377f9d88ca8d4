package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Broker delivers raw payloads to a named channel.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisBroker publishes over Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps a Redis client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish sends payload to channel. Having no subscriber is not an error.
func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

// UserChannel names the channel carrying a user's change events.
func UserChannel(prefix, userID string) string {
	if prefix == "" {
		return "user:" + userID
	}
	return prefix + ":user:" + userID
}
