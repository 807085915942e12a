package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"digiwallet/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	transactionChannel  = "digiwallet:events:transactions"
	notificationChannel = "digiwallet:events:notifications"

	publishTimeout = 2 * time.Second
)

// RedisPublisher publishes events as JSON on redis pub/sub channels.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a redis-backed event publisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	if client == nil {
		panic("redis client is required")
	}
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) PublishTransactionEvent(event TransactionEvent) {
	p.publish(transactionChannel, "transaction", event)
}

func (p *RedisPublisher) PublishNotificationEvent(event NotificationEvent) {
	p.publish(notificationChannel, "notification", event)
}

func (p *RedisPublisher) publish(channel, kind string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal %s event: %v", kind, err)
		metrics.EventsPublishedTotal.WithLabelValues(kind, "error").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("events: failed to publish %s event: %v", kind, err)
		metrics.EventsPublishedTotal.WithLabelValues(kind, "error").Inc()
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(kind, "ok").Inc()
}
