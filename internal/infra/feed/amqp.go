package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/pkg/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPFeed carries envelopes over a topic exchange. Each client owns a
// server-named exclusive queue bound with one routing key per joined
// facility.
type AMQPFeed struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	exchange string
	cfg      config.FeedConfig
	logger   *slog.Logger

	mu     sync.Mutex
	events chan event.Envelope
	lost   lossSignal
	done   chan struct{}
	closed bool
}

func NewAMQPFeed(cfg config.FeedConfig, logger *slog.Logger) (*AMQPFeed, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.AMQPExchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to start consumer: %w", err)
	}

	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 1
	}
	f := &AMQPFeed{
		conn:     conn,
		ch:       ch,
		queue:    q.Name,
		exchange: cfg.AMQPExchange,
		cfg:      cfg,
		logger:   logger,
		events:   make(chan event.Envelope, buffer),
		lost:     newLossSignal(),
		done:     make(chan struct{}),
	}
	go f.receive(deliveries)
	return f, nil
}

func (f *AMQPFeed) Join(_ context.Context, facilityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.cfg.RoutingKey(facilityID)
	if err := f.ch.QueueBind(f.queue, key, f.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s: %w", key, err)
	}
	f.logger.Info("joined facility routing key", "routing_key", key)
	return nil
}

func (f *AMQPFeed) Leave(_ context.Context, facilityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.cfg.RoutingKey(facilityID)
	if err := f.ch.QueueUnbind(f.queue, key, f.exchange, nil); err != nil {
		return fmt.Errorf("failed to unbind %s: %w", key, err)
	}
	f.logger.Info("left facility routing key", "routing_key", key)
	return nil
}

func (f *AMQPFeed) Publish(ctx context.Context, env event.Envelope) error {
	data, err := Encode(env)
	if err != nil {
		return err
	}
	key := f.cfg.RoutingKey(env.FacilityID)

	f.mu.Lock()
	defer f.mu.Unlock()
	err = f.ch.PublishWithContext(ctx, f.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
		Timestamp:   time.Now(),
		Type:        env.Kind,
	})
	if err != nil {
		f.logger.Error("failed to publish envelope", "routing_key", key, "error", err)
		return fmt.Errorf("failed to publish envelope: %w", err)
	}
	return nil
}

func (f *AMQPFeed) Events() <-chan event.Envelope {
	return f.events
}

func (f *AMQPFeed) Lost() <-chan struct{} {
	return f.lost
}

func (f *AMQPFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	// Closing the connection ends the delivery stream, which stops receive.
	err := f.conn.Close()
	select {
	case <-f.done:
	case <-time.After(closeTimeout):
		f.logger.Warn("timeout waiting for amqp receiver to stop")
	}
	if err != nil {
		return fmt.Errorf("failed to close amqp feed: %w", err)
	}
	return nil
}

func (f *AMQPFeed) receive(deliveries <-chan amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("panic in amqp receiver", "panic", r)
		}
		close(f.events)
		close(f.done)
	}()

	for d := range deliveries {
		env, err := Decode(d.Body)
		if err != nil {
			f.logger.Warn("discarding malformed envelope",
				"routing_key", d.RoutingKey,
				"error", err)
			continue
		}
		select {
		case f.events <- env:
		default:
			f.logger.Warn("dropping event for slow consumer", "routing_key", d.RoutingKey)
			f.lost.mark()
		}
	}
}
