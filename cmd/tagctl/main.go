// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

// Command tagctl runs the tag engine against local files without a server.
//
//	tagctl tag title.json
//	cat title.json | tagctl tag -
//	tagctl batch disney_plus_titles.csv --workers 8 --threshold 70
//	tagctl batch titles.json --json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
