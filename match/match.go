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

// Package match binds engine submatch positions back to the named
// captures of a translated pattern.
//
// Translation can add or restructure capturing groups, so the
// authoritative group list for a pattern is the one derived from the
// translated tree (flavor.Pattern.Groups): group names in paren-open
// order, "" for anonymous groups, duplicates preserved. Engines
// report submatches positionally in exactly that order. Bind joins
// the two without consulting the engine's own group naming, which
// some engines renumber.
package match

import (
	"fmt"
	"regexp"
)

// Capture is one capturing group's slice of a match.
type Capture struct {
	// Name is the group name, or "" for an anonymous group.
	Name string
	// Text is the captured text. It is empty both for an empty
	// capture and for a group that did not participate; check
	// Participated to tell them apart.
	Text string
	// Start and End are byte offsets into the source string.
	// Start is -1 when the group did not participate.
	Start, End int
}

// Participated reports whether the group took part in the match, as
// opposed to being skipped by an alternation branch or an optional
// quantifier.
func (c Capture) Participated() bool { return c.Start >= 0 }

// Result is a single match with its captures in group order.
type Result struct {
	// Text is the text of the whole match.
	Text string
	// Start and End are the byte offsets of the whole match
	// within the source string.
	Start, End int

	caps []Capture
}

// Bind pairs the ordered group names of a translated pattern with the
// submatch offsets reported by an engine.
//
// idx uses the regexp.FindStringSubmatchIndex layout: 2*(n+1) byte
// offsets into src, pair zero for the whole match, then one start/end
// pair per group in paren-open order, with -1,-1 for groups that did
// not participate. Any engine's submatch report can be put into this
// layout. groups is typically flavor.Pattern.Groups; Bind fails if
// its length disagrees with the pair count.
func Bind(groups []string, src string, idx []int) (*Result, error) {
	if len(idx) < 2 || len(idx)%2 != 0 {
		return nil, fmt.Errorf("match: bad submatch index count %d", len(idx))
	}
	if n := len(idx)/2 - 1; n != len(groups) {
		return nil, fmt.Errorf("match: %d submatches for %d groups", n, len(groups))
	}
	for i := 0; i < len(idx); i += 2 {
		start, end := idx[i], idx[i+1]
		if start == -1 && end == -1 {
			continue
		}
		if start < 0 || end < start || end > len(src) {
			return nil, fmt.Errorf("match: submatch %d range [%d,%d) outside source", i/2, start, end)
		}
	}
	r := &Result{Start: idx[0], End: idx[1]}
	if r.Start >= 0 {
		r.Text = src[r.Start:r.End]
	}
	r.caps = make([]Capture, len(groups))
	for i := range groups {
		start, end := idx[2*i+2], idx[2*i+3]
		c := Capture{Name: groups[i], Start: start, End: end}
		if start >= 0 {
			c.Text = src[start:end]
		}
		r.caps[i] = c
	}
	return r, nil
}

// FromRegexp runs re against src and binds its leftmost match, taking
// group names from the compiled pattern. It returns a nil Result when
// re does not match src.
//
// The stdlib engine numbers groups in paren-open order, the same
// order the group list of a translated tree uses, so patterns
// produced by the re2 flavor can be bound this way directly.
func FromRegexp(re *regexp.Regexp, src string) (*Result, error) {
	idx := re.FindStringSubmatchIndex(src)
	if idx == nil {
		return nil, nil
	}
	return Bind(re.SubexpNames()[1:], src, idx)
}

// Len returns the number of capturing groups in the pattern,
// participating or not.
func (r *Result) Len() int { return len(r.caps) }

// At returns the i-th capture in paren-open order. It panics if i is
// out of range.
func (r *Result) At(i int) Capture { return r.caps[i] }

// Get returns the last participating capture with the given name,
// mirroring how most engines resolve a backreference to a reused
// name. The second return is false if no capture with the name
// participated.
func (r *Result) Get(name string) (Capture, bool) {
	for i := len(r.caps) - 1; i >= 0; i-- {
		if r.caps[i].Name == name && r.caps[i].Participated() {
			return r.caps[i], true
		}
	}
	return Capture{}, false
}

// All returns every capture with the given name in group order,
// participating or not. A reused name yields multiple entries.
func (r *Result) All(name string) []Capture {
	var out []Capture
	for i := range r.caps {
		if r.caps[i].Name == name {
			out = append(out, r.caps[i])
		}
	}
	return out
}
