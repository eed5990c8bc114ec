// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package tagging implements the rule-based tag generation engine.

The engine inspects a ContentRecord and produces a TagSet with three
classifier outputs plus a confidence score:

  - Availability: New Arrival, Leaving Soon, Exclusive, or Standard
  - Brand: Disney, Marvel, Star Wars, Pixar, National Geographic
  - Category: age-rating and keyword categories such as Kids or Action

# Matching

Trigger tables are compiled once into Aho-Corasick automata when the
Engine is created. A single pass over the text blob reports every rule
with at least one hit, and labels are emitted in table declaration order
regardless of where in the text the hits occurred.

Brand and category tables match case-insensitively. The exclusivity
keywords and studio checks match case-sensitively.

# Time

Availability windows are calendar months relative to the engine clock:

	engine := tagging.NewEngine(tagging.WithClock(func() time.Time {
	    return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	}))

time.AddDate normalizes overflowing days, so one month before March 31
is March 2 (February 31 rolls forward).

# Batches

BatchGenerateTags isolates failures per record. A nil record, a record
without a title, or a panic during classification produces a result with
Success false, an empty TagSet and a zero score. BatchGenerateTagsConcurrent
evaluates the same way on a bounded worker pool and keeps input order.

# Thread Safety

An Engine holds only immutable automata and a clock function. It is safe
for concurrent use by multiple goroutines.
*/
package tagging
