// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
)

const metadataRequestID = "request_id"

// ErrBusClosed is returned by Publish and Run after Close.
var ErrBusClosed = errors.New("event bus closed")

// Config holds bus configuration.
type Config struct {
	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64

	// CloseTimeout is how long the router waits for handlers on shutdown.
	CloseTimeout time.Duration

	// Retry configuration for failing consumers.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultConfig returns the defaults used by the server.
func DefaultConfig() Config {
	return Config{
		BufferSize:           256,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
	}
}

type consumer struct {
	name  string
	topic string
	fn    HandlerFunc
}

// Bus is an in-process publish/subscribe bus backed by watermill.
type Bus struct {
	cfg    Config
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
	now    func() time.Time

	mu        sync.Mutex
	consumers []consumer
	router    *message.Router
	closed    bool
}

// NewBus creates a bus. A nil logger uses the global zerolog logger.
func NewBus(cfg Config, logger watermill.LoggerAdapter) *Bus {
	defaults := DefaultConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = defaults.CloseTimeout
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = defaults.RetryInitialInterval
	}
	if cfg.RetryMaxInterval <= 0 {
		cfg.RetryMaxInterval = defaults.RetryMaxInterval
	}
	if cfg.RetryMultiplier <= 0 {
		cfg.RetryMultiplier = defaults.RetryMultiplier
	}
	if logger == nil {
		logger = logging.NewWatermillAdapter()
	}

	return &Bus{
		cfg: cfg,
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, logger),
		logger: logger,
		now:    time.Now,
	}
}

// Publish wraps data in an Event and publishes it on topic. Events
// published while no router is running are dropped.
func (b *Bus) Publish(ctx context.Context, topic string, data interface{}) (err error) {
	defer func() { metrics.RecordEventPublish(topic, err) }()

	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	payload, err := json.Marshal(Event{Type: topic, Data: raw, Timestamp: b.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(metadataRequestID, id)
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers fn as the consumer name for topic.
func (b *Bus) Subscribe(name, topic string, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consumers = append(b.consumers, consumer{name: name, topic: topic, fn: fn})
}

// ForwardTo relays every topic to target.
func (b *Bus) ForwardTo(target Broadcaster) {
	for _, topic := range Topics {
		b.Subscribe("forward-"+topic, topic, func(_ context.Context, e Event) error {
			target.BroadcastJSON(e.Type, e.Data)
			return nil
		})
	}
}

// Run starts a router for the registered consumers and blocks until ctx is
// done or the router stops.
func (b *Bus) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	router, err := b.newRouter()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	for _, c := range b.consumers {
		router.AddConsumerHandler(c.name, c.topic, b.pubsub, b.handle(c))
	}
	b.router = router
	b.mu.Unlock()

	err = router.Run(ctx)

	b.mu.Lock()
	if b.router == router {
		b.router = nil
	}
	b.mu.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return errors.New("event router stopped")
}

// IsRunning reports whether a router is currently delivering events.
func (b *Bus) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.router != nil && b.router.IsRunning()
}

// Close stops the running router and the pub/sub. Close is idempotent.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	router := b.router
	b.mu.Unlock()

	var errs []error
	if router != nil {
		if err := router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close router: %w", err))
		}
	}
	if err := b.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pubsub: %w", err))
	}
	return errors.Join(errs...)
}

// String implements fmt.Stringer for supervisor logs.
func (b *Bus) String() string {
	return "event-router"
}

func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Outer to inner: acknowledge exhausted failures, retry, recover panics.
	router.AddMiddleware(b.dropFailed)
	retry := middleware.Retry{
		MaxRetries:      b.cfg.RetryMaxRetries,
		InitialInterval: b.cfg.RetryInitialInterval,
		MaxInterval:     b.cfg.RetryMaxInterval,
		Multiplier:      b.cfg.RetryMultiplier,
		Logger:          b.logger,
	}
	router.AddMiddleware(retry.Middleware)
	router.AddMiddleware(middleware.Recoverer)
	return router, nil
}

// dropFailed logs a message that failed every retry and acknowledges it.
func (b *Bus) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			logging.Error().
				Err(err).
				Str("handler", message.HandlerNameFromCtx(msg.Context())).
				Str("message_uuid", msg.UUID).
				Msg("event handler failed, dropping message")
			return nil, nil
		}
		return out, nil
	}
}

func (b *Bus) handle(c consumer) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		var e Event
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			// Malformed payloads can never succeed.
			logging.Error().Err(err).Str("topic", c.topic).Msg("discarding malformed event")
			return nil
		}

		ctx := msg.Context()
		if id := msg.Metadata.Get(metadataRequestID); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		if err := c.fn(ctx, e); err != nil {
			return err
		}
		metrics.EventsDelivered.WithLabelValues(c.topic).Inc()
		return nil
	}
}

var _ Publisher = (*Bus)(nil)
