// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package events is the in-process event bus for catalog changes.

The Bus publishes JSON envelopes on a watermill gochannel pub/sub and
delivers them through a watermill router to registered consumers. The
router runs panic recovery and bounded retries; a consumer that still fails
is logged and its message acknowledged so gochannel does not redeliver it
forever.

Topics:

	content.tagged   a content item was created, retagged or imported
	content.deleted  a content item was removed ({"id": n})
	batch.completed  a batch tagging job finished (the batch record)

ForwardTo registers a consumer per topic that relays every event to a
Broadcaster such as the websocket hub.

Run builds a fresh router on every call, so the bus can be restarted by a
supervisor. Consumers registered while the router is running take effect on
the next Run.
*/
package events
