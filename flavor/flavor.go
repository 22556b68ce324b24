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

// Package flavor translates pattern trees into the syntax of
// concrete regex dialects.
//
// A Flavor pairs a feature set (what the dialect supports natively)
// with an ordered rule table. Translating a tree dispatches every
// node through the table: the first rule that recognizes the node
// decides its fate, nodes no rule claims are rebuilt with translated
// children. Constructs the dialect cannot express at all abort the
// translation with an UnsupportedError; constructs that can only be
// approximated succeed and leave an Advisory behind.
package flavor

import (
	"sort"
	"sync"

	"golang.org/x/exp/slices"
)

// Flavor describes one target dialect.
type Flavor struct {
	// Name identifies the flavor in definitions and diagnostics.
	Name string
	// Features lists the constructs the dialect supports natively.
	Features Feature

	strict bool
	rules  []Rule
}

// New returns a flavor with the given name, feature set and rule
// table. Rules are consulted in the order given; see Rule for the
// dispatch contract.
func New(name string, feats Feature, rules ...Rule) *Flavor {
	return &Flavor{
		Name:     name,
		Features: feats,
		rules:    slices.Clone(rules),
	}
}

// WithStrict returns a copy of f with strict mode set. A strict
// flavor refuses approximations: any rewrite that would record an
// Advisory fails with an UnsupportedError instead.
func (f *Flavor) WithStrict(strict bool) *Flavor {
	c := *f
	c.strict = strict
	return &c
}

// IsStrict reports whether f escalates advisories into errors.
func (f *Flavor) IsStrict() bool { return f.strict }

var (
	registryLock sync.RWMutex
	registry     = make(map[string]*Flavor)
)

// Register makes f available through Lookup, replacing any flavor
// previously registered under the same name.
func Register(f *Flavor) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[f.Name] = f
}

// Lookup returns the registered flavor with the given name, or nil.
func Lookup(name string) *Flavor {
	registryLock.RLock()
	defer registryLock.RUnlock()
	return registry[name]
}

// Flavors returns the names of all registered flavors, sorted.
func Flavors() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
