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

package flavor

import (
	"strings"
)

// Feature is a bitmask of regex constructs a target dialect
// supports natively. Rules consult the feature set of the flavor
// being translated for, so one rule implementation serves every
// dialect.
type Feature uint16

const (
	// Possessive means quantifiers accept the ++ suffix.
	Possessive Feature = 1 << iota
	// AtomicGroups means (?>...) groups are native.
	AtomicGroups
	// Lookahead means (?=...) and (?!...) are native.
	Lookahead
	// Lookbehind means (?<=...) and (?<!...) are native.
	Lookbehind
	// NamedGroups means capturing groups can carry names.
	NamedGroups
	// Backrefs means named backreferences are native.
	Backrefs
	// UnicodeClasses means \p{...} category classes are native.
	UnicodeClasses
	// InlineFlags means (?i:...) style flag groups are native.
	InlineFlags
	// InputAnchors means \A, \z and \Z are native.
	InputAnchors
)

var features = []struct {
	bit  Feature
	name string
}{
	{Possessive, "possessive"},
	{AtomicGroups, "atomic-groups"},
	{Lookahead, "lookahead"},
	{Lookbehind, "lookbehind"},
	{NamedGroups, "named-groups"},
	{Backrefs, "backrefs"},
	{UnicodeClasses, "unicode-classes"},
	{InlineFlags, "inline-flags"},
	{InputAnchors, "input-anchors"},
}

// Has reports whether every feature in x is present in f.
func (f Feature) Has(x Feature) bool { return f&x == x }

// String returns the named features in f as a +-joined list.
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var sb strings.Builder
	for i := range features {
		if !f.Has(features[i].bit) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(features[i].name)
	}
	return sb.String()
}

// feature maps a definition-file feature name to its bit.
func feature(name string) (Feature, bool) {
	for i := range features {
		if features[i].name == name {
			return features[i].bit, true
		}
	}
	return 0, false
}
