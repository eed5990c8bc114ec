// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package events

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// Topic names.
const (
	TopicContentTagged  = "content.tagged"
	TopicContentDeleted = "content.deleted"
	TopicBatchCompleted = "batch.completed"
)

// Topics lists every topic the bus carries.
var Topics = []string{TopicContentTagged, TopicContentDeleted, TopicBatchCompleted}

// Event is the envelope carried on every topic.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// DeletedPayload is the data of a content.deleted event.
type DeletedPayload struct {
	ID int `json:"id"`
}

// Publisher publishes catalog events.
type Publisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
}

// NopPublisher discards events. It is used when the bus is disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Broadcaster receives forwarded events. *websocket.Hub satisfies it.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// HandlerFunc consumes one event. A returned error triggers retries.
type HandlerFunc func(ctx context.Context, e Event) error
