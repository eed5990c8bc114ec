// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package services

import "context"

// EventRouter is satisfied by *events.Bus. Run builds a fresh router per
// call, so a restart after a crash resubscribes every consumer.
type EventRouter interface {
	Run(ctx context.Context) error
}

// EventRouterService delivers published catalog events to their consumers.
type EventRouterService struct {
	router EventRouter
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{router: router}
}

// Serve implements suture.Service.
func (e *EventRouterService) Serve(ctx context.Context) error {
	return e.router.Run(ctx)
}

func (e *EventRouterService) String() string {
	return "event-router"
}
