// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

// Package logging provides centralized zerolog-based logging.
//
// A single global logger is configured once at startup and shared by every
// package. Adapters route the logs of third-party libraries into the same
// pipeline: SlogHandler for sutureslog and WatermillAdapter for the event bus.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("items", n).Msg("Catalog seeded")
//	logging.Err(err).Str("title", title).Msg("Import failed")
//
//	// Request and correlation IDs from context
//	logging.Ctx(ctx).Info().Msg("Batch finished")
//
// # Configuration
//
// The config package maps LOG_LEVEL, LOG_FORMAT and LOG_CALLER onto Config.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
