// Copyright 2023 The Rexterm Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package rexterm builds regular expressions as composable trees and
// renders them for concrete engine dialects.
//
// The work happens in the subpackages: term holds the tree algebra,
// flavor the dialect translation, match the submatch binding, dates
// a library of prebuilt pattern trees, cleaner the input
// normalization steps, and corpus the pattern file format. This
// package re-exports the two-call happy path against the flavor
// registry.
package rexterm

import (
	"fmt"

	"github.com/rexterm/rexterm/flavor"
	"github.com/rexterm/rexterm/term"
)

// Version is the rexterm release version.
const Version = "0.4.0"

// Translate rewrites t for the named registered flavor and returns
// the translated tree along with any advisories.
func Translate(flavorName string, t term.Term) (term.Term, []flavor.Advisory, error) {
	f := flavor.Lookup(flavorName)
	if f == nil {
		return nil, nil, fmt.Errorf("rexterm: no flavor %q", flavorName)
	}
	return f.Translate(t)
}

// Express translates t for the named registered flavor and renders
// the result as pattern text with its ordered group names.
func Express(flavorName string, t term.Term) (*flavor.Pattern, error) {
	f := flavor.Lookup(flavorName)
	if f == nil {
		return nil, fmt.Errorf("rexterm: no flavor %q", flavorName)
	}
	return f.Express(t)
}
