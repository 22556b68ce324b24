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
	"fmt"
)

// UnsupportedError means the input tree uses a construct the target
// dialect cannot express, not even approximately. Translation stops
// at the first one.
type UnsupportedError struct {
	// Flavor is the name of the flavor that rejected the tree.
	Flavor string
	// Construct describes the offending construct.
	Construct string
	// Path locates the construct in the input tree, as a /-joined
	// chain of node descriptions from the root.
	Path string
	// Note optionally explains the rejection; it is set when a
	// strict translation escalated an advisory.
	Note string
}

func (e *UnsupportedError) Error() string {
	if e.Note != "" {
		return fmt.Sprintf("flavor %s: cannot express %s at %s: %s",
			e.Flavor, e.Construct, e.Path, e.Note)
	}
	return fmt.Sprintf("flavor %s: cannot express %s at %s",
		e.Flavor, e.Construct, e.Path)
}

// Advisory flags output that works but is not exactly equivalent to
// the input: an approximated class, a loosened anchor. Advisories
// accumulate in order of discovery; strict flavors turn them into
// UnsupportedErrors instead.
type Advisory struct {
	// Construct is the dialect-neutral rendering of the construct
	// that was approximated.
	Construct string
	// Path locates the construct in the input tree.
	Path string
	// Note says what the output does instead.
	Note string
}

func (a Advisory) String() string {
	return fmt.Sprintf("%s at %s: %s", a.Construct, a.Path, a.Note)
}
