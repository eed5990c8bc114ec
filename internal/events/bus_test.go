// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/logging"
)

func init() {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})
}

func testConfig() Config {
	return Config{
		BufferSize:           16,
		CloseTimeout:         time.Second,
		RetryMaxRetries:      2,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
		RetryMultiplier:      1.5,
	}
}

// startBus runs b until the test ends and waits for the router to be up.
func startBus(t *testing.T, b *Bus) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	deadline := time.Now().Add(3 * time.Second)
	for !b.IsRunning() {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("router did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Cleanup(func() {
		cancel()
		<-done
		_ = b.Close()
	})
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages map[string]json.RawMessage
}

func (r *recordingBroadcaster) BroadcastJSON(messageType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.messages == nil {
		r.messages = make(map[string]json.RawMessage)
	}
	raw, _ := data.(json.RawMessage)
	r.messages[messageType] = raw
}

func (r *recordingBroadcaster) get(messageType string) (json.RawMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.messages[messageType]
	return raw, ok
}

func TestBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return fixed }

	received := make(chan Event, 1)
	var gotRequestID atomic.Value
	bus.Subscribe("test", TopicContentDeleted, func(ctx context.Context, e Event) error {
		gotRequestID.Store(logging.RequestIDFromContext(ctx))
		received <- e
		return nil
	})
	startBus(t, bus)

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	if err := bus.Publish(ctx, TopicContentDeleted, DeletedPayload{ID: 9}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case e := <-received:
		if e.Type != TopicContentDeleted {
			t.Errorf("Type = %q", e.Type)
		}
		if !e.Timestamp.Equal(fixed) {
			t.Errorf("Timestamp = %v, want %v", e.Timestamp, fixed)
		}
		var p DeletedPayload
		if err := json.Unmarshal(e.Data, &p); err != nil || p.ID != 9 {
			t.Errorf("payload = %s (%v)", e.Data, err)
		}
		if id, _ := gotRequestID.Load().(string); id != "req-42" {
			t.Errorf("request id = %q, want req-42", id)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_ForwardTo(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	target := &recordingBroadcaster{}
	bus.ForwardTo(target)
	startBus(t, bus)

	for _, topic := range Topics {
		if err := bus.Publish(context.Background(), topic, map[string]string{"topic": topic}); err != nil {
			t.Fatalf("Publish %s: %v", topic, err)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	for _, topic := range Topics {
		for {
			raw, ok := target.get(topic)
			if ok {
				var data map[string]string
				if err := json.Unmarshal(raw, &data); err != nil || data["topic"] != topic {
					t.Errorf("%s forwarded %s", topic, raw)
				}
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("%s was not forwarded", topic)
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestBus_FailingHandlerIsRetriedThenDropped(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	var calls atomic.Int32
	bus.Subscribe("flaky", TopicBatchCompleted, func(context.Context, Event) error {
		calls.Add(1)
		return errors.New("downstream unavailable")
	})
	startBus(t, bus)

	if err := bus.Publish(context.Background(), TopicBatchCompleted, map[string]int{"id": 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := int32(testConfig().RetryMaxRetries + 1)
	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("calls = %d, want %d", calls.Load(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The message is acknowledged after the last retry, so no redelivery.
	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != want {
		t.Errorf("calls = %d after settling, want %d", got, want)
	}
}

func TestBus_PanickingHandlerDoesNotStopRouter(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	var panicked atomic.Bool
	delivered := make(chan struct{}, 1)
	bus.Subscribe("panicky", TopicContentTagged, func(context.Context, Event) error {
		if panicked.CompareAndSwap(false, true) {
			panic("boom")
		}
		select {
		case delivered <- struct{}{}:
		default:
		}
		return nil
	})
	startBus(t, bus)

	if err := bus.Publish(context.Background(), TopicContentTagged, map[string]int{"id": 1}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-delivered:
	case <-time.After(3 * time.Second):
		t.Fatal("handler never succeeded after panic")
	}
	if !bus.IsRunning() {
		t.Error("router stopped after handler panic")
	}
}

func TestBus_RunRestartsAfterCancel(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	defer bus.Close()

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- bus.Run(ctx) }()

		deadline := time.Now().Add(3 * time.Second)
		for !bus.IsRunning() {
			if time.Now().After(deadline) {
				cancel()
				t.Fatalf("run %d: router did not start", i)
			}
			time.Sleep(5 * time.Millisecond)
		}

		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("run %d: Run error = %v, want context.Canceled", i, err)
		}
	}
}

func TestBus_Closed(t *testing.T) {
	t.Parallel()

	bus := NewBus(testConfig(), nil)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if err := bus.Publish(context.Background(), TopicContentTagged, nil); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish after Close = %v, want ErrBusClosed", err)
	}
	if err := bus.Run(context.Background()); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Run after Close = %v, want ErrBusClosed", err)
	}
}

func TestNewBus_Defaults(t *testing.T) {
	t.Parallel()

	bus := NewBus(Config{}, nil)
	defer bus.Close()

	want := DefaultConfig()
	if bus.cfg.BufferSize != want.BufferSize || bus.cfg.CloseTimeout != want.CloseTimeout {
		t.Errorf("cfg = %+v, want defaults %+v", bus.cfg, want)
	}
	if bus.String() != "event-router" {
		t.Errorf("String() = %q", bus.String())
	}
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), TopicContentTagged, struct{}{}); err != nil {
		t.Errorf("NopPublisher.Publish = %v", err)
	}
}
