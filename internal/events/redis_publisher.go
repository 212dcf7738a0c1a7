package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisQueueSize      = 256
	redisPublishTimeout = 2 * time.Second
)

// ErrPublishQueueFull is returned when events arrive faster than redis drains them.
var ErrPublishQueueFull = errors.New("redis publish queue full")

// RedisPublisher forwards events as JSON to a redis pub/sub channel. Handle only
// enqueues; Run performs the network publish off the request goroutine.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	queue   chan Event
	timeout time.Duration
	logger  *zap.Logger
}

// NewRedisPublisher constructs a publisher for channel.
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		queue:   make(chan Event, redisQueueSize),
		timeout: redisPublishTimeout,
		logger:  logger,
	}
}

// Handle is an EventHandler. It never blocks; a full queue drops the event.
func (p *RedisPublisher) Handle(_ context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	select {
	case p.queue <- event:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s", ErrPublishQueueFull, event.Type)
	}
}

// Register subscribes the publisher to every item event.
func (p *RedisPublisher) Register(d Dispatcher) {
	d.Subscribe(EventItemSubmitted, p.Handle)
	d.Subscribe(EventItemStatusChanged, p.Handle)
}

// Run drains the queue until ctx is cancelled.
func (p *RedisPublisher) Run(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-p.queue:
			if err := p.publish(ctx, event); err != nil {
				p.logger.Warn("redis publish failed",
					zap.String("event_type", string(event.Type)),
					zap.Int64("item_id", event.ItemID),
					zap.Error(err))
			}
		}
	}
}

func (p *RedisPublisher) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis publish: marshal %s: %w", event.Type, err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", event.Type, err)
	}
	return nil
}
