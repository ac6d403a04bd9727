package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout  = 5 * time.Second
	closeTimeout = 5 * time.Second
)

// RedisFeed carries envelopes over Redis Pub/Sub, one channel per facility.
type RedisFeed struct {
	client *redis.Client
	pubsub *redis.PubSub
	cfg    config.FeedConfig
	logger *slog.Logger

	events   chan event.Envelope
	lost     lossSignal
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.Mutex
	closed   bool
}

func NewRedisFeed(cfg config.FeedConfig, logger *slog.Logger) (*RedisFeed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 1
	}
	f := &RedisFeed{
		client: client,
		// No channels yet; rooms are added by Join.
		pubsub: client.Subscribe(context.Background()),
		cfg:    cfg,
		logger: logger,
		events: make(chan event.Envelope, buffer),
		lost:   newLossSignal(),
		done:   make(chan struct{}),
	}
	go f.receive()
	return f, nil
}

func (f *RedisFeed) Join(ctx context.Context, facilityID int64) error {
	channel := f.cfg.Channel(facilityID)
	if err := f.pubsub.Subscribe(ctx, channel); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}
	f.logger.Info("joined facility channel", "channel", channel)
	return nil
}

func (f *RedisFeed) Leave(ctx context.Context, facilityID int64) error {
	channel := f.cfg.Channel(facilityID)
	if err := f.pubsub.Unsubscribe(ctx, channel); err != nil {
		return fmt.Errorf("failed to unsubscribe from %s: %w", channel, err)
	}
	f.logger.Info("left facility channel", "channel", channel)
	return nil
}

func (f *RedisFeed) Publish(ctx context.Context, env event.Envelope) error {
	data, err := Encode(env)
	if err != nil {
		return err
	}
	channel := f.cfg.Channel(env.FacilityID)
	if err := f.client.Publish(ctx, channel, data).Err(); err != nil {
		f.logger.Error("failed to publish envelope",
			"channel", channel,
			"error", err)
		return fmt.Errorf("failed to publish envelope: %w", err)
	}
	f.logger.Debug("published envelope", "channel", channel, "kind", env.Kind)
	return nil
}

func (f *RedisFeed) Events() <-chan event.Envelope {
	return f.events
}

func (f *RedisFeed) Lost() <-chan struct{} {
	return f.lost
}

func (f *RedisFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	var errs []string
	if err := f.pubsub.Close(); err != nil {
		errs = append(errs, err.Error())
	}

	select {
	case <-f.done:
	case <-time.After(closeTimeout):
		f.logger.Warn("timeout waiting for redis receiver to stop")
	}

	if err := f.client.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close redis feed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (f *RedisFeed) receive() {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("panic in redis receiver", "panic", r)
		}
		close(f.events)
		f.doneOnce.Do(func() { close(f.done) })
	}()

	for msg := range f.pubsub.Channel() {
		env, err := Decode([]byte(msg.Payload))
		if err != nil {
			f.logger.Warn("discarding malformed envelope",
				"channel", msg.Channel,
				"error", err)
			continue
		}
		select {
		case f.events <- env:
		default:
			f.logger.Warn("dropping event for slow consumer", "channel", msg.Channel)
			f.lost.mark()
		}
	}
}
