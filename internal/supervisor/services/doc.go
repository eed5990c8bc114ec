// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package services adapts tagsmith components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel.
    An externally closed server returns suture.ErrDoNotRestart.
  - WebSocketHubService: the live feed hub's RunWithContext.
  - EventRouterService: the event bus router. Every restart builds a new
    watermill router with all registered consumers.
  - StorageGCService: periodic BadgerDB value log GC. Failures are logged
    and counted in catalog_operation_errors_total{operation="gc"}.

Serve returns ctx.Err() on shutdown and a wrapped error on failure, which
tells the supervisor to restart the service after backoff.
*/
package services
