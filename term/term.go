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

// Package term implements the pattern algebra at the heart of rexterm:
// an immutable tree of regular-expression building blocks that can be
// walked, rewritten, compared structurally, and rendered into the
// dialect-neutral surface syntax.
//
// Trees are persistent: no operation in this package (or in package
// flavor) ever modifies a Term in place. Rewrites allocate new nodes
// and share nothing mutable with their input, so separate translations
// of the same tree may run concurrently without coordination.
package term

import (
	"strings"
)

// Term is a node in a pattern tree.
//
// The algebra is closed: the set of implementations lives entirely in
// this package, and consumers dispatch over it with a type switch.
// Concrete variants are Lit, Class, Ref (values) and *Concat, *Alt,
// *Rep, *Look, *Group, *NonCap, *Atomic and *Wrap (pointers).
type Term interface {
	// Equals returns whether this term is structurally
	// equivalent to another term.
	Equals(Term) bool

	// text appends the dialect-neutral rendering of the term.
	// When redact is true, literal text is replaced with opaque
	// tokens so the output cannot leak pattern content.
	text(dst *strings.Builder, redact bool)

	// unit reports whether the rendering forms a single
	// self-delimiting unit that can be quantified directly
	// and never needs a defensive non-capturing group.
	unit() bool

	walk(v Visitor)

	enc() *envelope
}

// Visitor is the interface accepted by Walk.
//
// A Visitor's Visit method is invoked for each term encountered by
// Walk. If the returned visitor w is not nil, Walk visits each child
// of the term with w, followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Term) Visitor
}

// Walk traverses a tree in depth-first, left-to-right order.
// It begins by calling v.Visit(t); t must not be nil. If the visitor
// returned by v.Visit(t) is not nil, Walk recurses into each non-nil
// child with that visitor and finishes with a call of w.Visit(nil).
func Walk(v Visitor, t Term) {
	w := v.Visit(t)
	if w != nil {
		t.walk(w)
		w.Visit(nil)
	}
}

// Rewriter accepts a Term and returns a replacement term
// (or just its argument).
type Rewriter interface {
	// Rewrite is applied to terms in depth-first order.
	// The result replaces the visited term in the rebuilt tree.
	Rewrite(Term) Term

	// Walk is called during traversal and the returned Rewriter
	// is used for the children of the term. A nil return stops
	// traversal below the term.
	Walk(Term) Rewriter
}

type nonleaf interface {
	// rewrite returns a copy of the receiver with every child
	// passed through Rewrite(r, child). The receiver is left
	// untouched; trees are persistent.
	rewrite(r Rewriter) Term
}

// Rewrite applies r to t in depth-first order and returns the
// rebuilt tree. The input tree is never modified; rewritten interior
// nodes are fresh allocations.
func Rewrite(r Rewriter, t Term) Term {
	if t == nil {
		return nil
	}
	if nl, ok := t.(nonleaf); ok {
		if rc := r.Walk(t); rc != nil {
			t = nl.rewrite(rc)
		}
	}
	return r.Rewrite(t)
}

// ToString renders the dialect-neutral surface syntax of t.
// The result uses the widest shared syntax (named groups as
// (?<name>E), backreferences as \k<name>, atomic groups as (?>E),
// possessive quantifiers as E++); flavors rewrite constructs their
// target cannot express before rendering.
func ToString(t Term) string {
	if t == nil {
		return ""
	}
	var dst strings.Builder
	t.text(&dst, false)
	return dst.String()
}

// ToRedacted renders t like ToString, but with all literal text
// replaced by deterministic opaque tokens. Use it when logging
// patterns that may embed user data.
func ToRedacted(t Term) string {
	if t == nil {
		return ""
	}
	var dst strings.Builder
	t.text(&dst, true)
	return dst.String()
}

// Equal returns whether a and b are structurally equivalent.
// Either may be nil.
func Equal(a, b Term) bool {
	if a == nil {
		return b == nil
	}
	return b != nil && a.Equals(b)
}
