// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package websocket pushes catalog events to dashboard clients.

A Hub holds the connected clients and fans out messages queued with
BroadcastJSON. Each Client runs a read goroutine (answers application pings,
detects disconnects) and a write goroutine (delivers hub messages and
keepalive pings). Handler performs the HTTP upgrade with an Origin check
against the configured CORS origins.

Messages are JSON objects with a type and a data payload:

	{"type": "content.tagged", "data": {"id": 12, "title": "Toy Story", ...}}

The event bus forwards content.tagged, content.deleted and batch.completed
events to the hub; clients may send {"type": "ping"} and receive
{"type": "pong"}.

Slow clients whose send buffer fills are disconnected rather than allowed to
stall the broadcast loop. RunWithContext closes every client when its
context ends and can be restarted by the supervisor.
*/
package websocket
