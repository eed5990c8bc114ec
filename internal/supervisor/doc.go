// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package supervisor runs the tagsmith process as a suture v4 supervision tree.

# Layout

	tagsmith (root)
	├── data-layer
	│   └── storage-gc       (BadgerDB backend only)
	├── messaging-layer
	│   ├── websocket-hub
	│   └── event-router     (when events are enabled)
	└── api-layer
	    └── http-server

Each layer is its own supervisor with the same failure threshold, decay and
backoff. A service that keeps failing is backed off inside its layer while
the other layers keep running. Supervisor events are logged through
sutureslog into the zerolog backed slog handler from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

Services are added before Serve. Canceling ctx stops the tree; services
that do not return within ShutdownTimeout show up in UnstoppedServiceReport.
*/
package supervisor
