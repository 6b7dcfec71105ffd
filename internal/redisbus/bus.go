// Package redisbus carries the display sync protocol over Redis pub/sub,
// for displays that run on another host than the owner.
package redisbus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/queuebot/internal/codec"
	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/KirkDiggler/queuebot/internal/services/display"
)

const (
	defaultSnapshotChannel = "queuebot:snapshot"
	defaultRequestChannel  = "queuebot:request"

	// SinkID identifies the bus in the owner's broadcaster
	SinkID = "redis"

	defaultPublishTimeout  = 500 * time.Millisecond
	defaultRequestInterval = 2 * time.Second
)

// Config holds configuration for the Redis sync bus
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Channel overrides; the defaults are used when empty
	SnapshotChannel string
	RequestChannel  string

	// PublishTimeout bounds each snapshot publish. The owner publishes
	// while holding the queue lock, so an unreachable server must not
	// stall chat commands. The client needs ContextTimeoutEnabled.
	PublishTimeout time.Duration

	// RequestInterval is how often a display repeats its snapshot request
	// until the first snapshot arrives
	RequestInterval time.Duration
}

// Bus publishes CBOR snapshots for remote displays and relays their
// snapshot requests. The owner registers it as a display.Sink and runs
// ServeRequests; a display process runs Run.
type Bus struct {
	client          *redis.Client
	snapshotChannel string
	requestChannel  string
	publishTimeout  time.Duration
	requestInterval time.Duration
}

// New creates a new Redis sync bus
func New(cfg *Config) (*Bus, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	bus := &Bus{
		client:          cfg.RedisClient,
		snapshotChannel: cfg.SnapshotChannel,
		requestChannel:  cfg.RequestChannel,
		publishTimeout:  cfg.PublishTimeout,
		requestInterval: cfg.RequestInterval,
	}
	if bus.snapshotChannel == "" {
		bus.snapshotChannel = defaultSnapshotChannel
	}
	if bus.requestChannel == "" {
		bus.requestChannel = defaultRequestChannel
	}
	if bus.publishTimeout <= 0 {
		bus.publishTimeout = defaultPublishTimeout
	}
	if bus.requestInterval <= 0 {
		bus.requestInterval = defaultRequestInterval
	}

	return bus, nil
}

// ID implements display.Sink
func (b *Bus) ID() string {
	return SinkID
}

// Send implements display.Sink by publishing the encoded snapshot
func (b *Bus) Send(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := codec.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	return b.client.Publish(ctx, b.snapshotChannel, data).Err()
}

// ServeRequests answers snapshot requests from remote displays until ctx
// is cancelled
func (b *Bus) ServeRequests(ctx context.Context, requester display.SnapshotRequester) error {
	sub := b.client.Subscribe(ctx, b.requestChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.requestChannel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if msg.Payload != string(models.SyncMessageRequestSnapshot) {
				continue
			}
			if err := requester.RequestSnapshot(ctx); err != nil {
				log.Printf("Failed to answer remote snapshot request: %v", err)
			}
		}
	}
}

// Run subscribes to snapshots, asks the owner for the current one and
// hands every snapshot received to onSnapshot until ctx is cancelled. The
// request is repeated until a snapshot arrives, so a display started
// before the owner still initializes.
func (b *Bus) Run(ctx context.Context, onSnapshot func(*models.Snapshot)) error {
	sub := b.client.Subscribe(ctx, b.snapshotChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.snapshotChannel, err)
	}

	if err := b.requestSnapshot(ctx); err != nil {
		return fmt.Errorf("failed to request snapshot: %w", err)
	}

	ticker := time.NewTicker(b.requestInterval)
	defer ticker.Stop()
	retry := ticker.C

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-retry:
			if err := b.requestSnapshot(ctx); err != nil {
				log.Printf("Failed to repeat snapshot request: %v", err)
			}
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			snapshot, err := codec.DecodeSnapshot([]byte(msg.Payload))
			if err != nil {
				log.Printf("Dropping undecodable snapshot: %v", err)
				continue
			}
			// Pushes keep the mirror current from here on
			if retry != nil {
				ticker.Stop()
				retry = nil
			}
			onSnapshot(snapshot)
		}
	}
}

func (b *Bus) requestSnapshot(ctx context.Context) error {
	return b.client.Publish(ctx, b.requestChannel, string(models.SyncMessageRequestSnapshot)).Err()
}
