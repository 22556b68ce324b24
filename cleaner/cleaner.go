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

// Package cleaner normalizes input text before pattern matching.
//
// Dialect translation narrows some constructs (a Unicode letter class
// may degrade to an ASCII range, appearing in the translation's
// advisories); cleaning the input correspondingly, for example by
// folding diacritics, keeps the narrowed pattern useful. Every
// Cleaner is pure and safe for concurrent use.
package cleaner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Cleaner is a single text normalization step.
type Cleaner interface {
	// Name is the name of the cleaning step.
	Name() string
	// Clean returns the cleaned copy of s. Equal inputs yield
	// equal outputs.
	Clean(s string) string
}

// TrimSpace returns a cleaner that removes leading and trailing
// whitespace.
func TrimSpace() Cleaner { return trimSpace{} }

// CollapseSpace returns a cleaner that collapses every run of
// whitespace to a single space and drops leading and trailing runs
// entirely.
func CollapseSpace() Cleaner { return collapseSpace{} }

// LowerCase returns a cleaner that lowercases the text.
func LowerCase() Cleaner { return lowerCase{} }

// StripControl returns a cleaner that removes control characters,
// including newlines and tabs. Apply CollapseSpace first if those
// should become spaces instead.
func StripControl() Cleaner { return stripControl{} }

// FoldDiacritics returns a cleaner that strips combining marks after
// canonical decomposition, turning Crème into Creme. The base letters
// are kept as-is.
func FoldDiacritics() Cleaner { return foldDiacritics{} }

// Chain applies each cleaner in order. Its name is the "+"-joined
// names of its parts.
func Chain(parts ...Cleaner) Cleaner { return chain(parts) }

// Named selects a cleaner by name: "trim", "collapse", "lower",
// "strip-control" or "fold". Composite names join simple ones with
// "+" and apply left to right, as in "fold+lower". Named returns nil
// if any part is unknown.
func Named(name string) Cleaner {
	parts := strings.Split(name, "+")
	if len(parts) > 1 {
		cs := make([]Cleaner, len(parts))
		for i := range parts {
			if cs[i] = Named(parts[i]); cs[i] == nil {
				return nil
			}
		}
		return chain(cs)
	}
	switch name {
	case "trim":
		return trimSpace{}
	case "collapse":
		return collapseSpace{}
	case "lower":
		return lowerCase{}
	case "strip-control":
		return stripControl{}
	case "fold":
		return foldDiacritics{}
	default:
		return nil
	}
}

type trimSpace struct{}

func (trimSpace) Name() string { return "trim" }

func (trimSpace) Clean(s string) string { return strings.TrimSpace(s) }

type collapseSpace struct{}

func (collapseSpace) Name() string { return "collapse" }

func (collapseSpace) Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

type lowerCase struct{}

func (lowerCase) Name() string { return "lower" }

func (lowerCase) Clean(s string) string { return strings.ToLower(s) }

type stripControl struct{}

func (stripControl) Name() string { return "strip-control" }

func (stripControl) Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

type foldDiacritics struct{}

func (foldDiacritics) Name() string { return "fold" }

func (foldDiacritics) Clean(s string) string {
	// the chain buffers state between links, so it cannot be
	// shared across goroutines; build it per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

type chain []Cleaner

func (c chain) Name() string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name()
	}
	return strings.Join(names, "+")
}

func (c chain) Clean(s string) string {
	for i := range c {
		s = c[i].Clean(s)
	}
	return s
}
