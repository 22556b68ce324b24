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

package term

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Lit is a verbatim pattern fragment. The text is stored exactly as
// it should appear in the rendered pattern; see Text for a
// constructor that escapes metacharacters first.
type Lit struct {
	// Text is the raw fragment, already escaped.
	Text string
	// Unit marks fragments that form a single quantifiable unit
	// (one character, one escape sequence, one bracket class) and
	// therefore never need a defensive group around them.
	Unit bool
}

// Text returns a literal matching s exactly: every regex
// metacharacter in s is escaped. The result is a unit when
// s is a single character.
func Text(s string) Lit {
	return Lit{
		Text: regexp.QuoteMeta(s),
		Unit: utf8.RuneCountInString(s) == 1,
	}
}

// Raw returns a literal holding a pre-escaped pattern fragment.
// The caller asserts the fragment is well-formed; unit should be
// true only if the fragment is a single quantifiable unit.
func Raw(s string, unit bool) Lit {
	return Lit{Text: s, Unit: unit}
}

func (l Lit) Equals(t Term) bool {
	l2, ok := t.(Lit)
	return ok && l == l2
}

func (l Lit) text(dst *strings.Builder, redact bool) {
	if redact {
		dst.WriteString(redactString(l.Text))
		return
	}
	dst.WriteString(l.Text)
}

func (l Lit) unit() bool { return l.Unit }

func (l Lit) walk(v Visitor) {}

// Concat matches its sub-terms in sequence.
type Concat struct {
	Terms []Term
	// Protected requests defensive grouping: sub-terms whose
	// rendering could bleed into a neighbor (multi-character raw
	// fragments, nested sequences, opaque wraps) are rendered
	// inside a non-capturing group. Unprotected concatenation
	// splices the renderings together verbatim, which callers use
	// to glue raw fragments at their own risk. Alternations are
	// grouped in either mode, since a bare | would change the
	// meaning of the sequence.
	Protected bool
}

// Seq returns the protected concatenation of terms.
func Seq(terms ...Term) *Concat {
	return &Concat{Terms: terms, Protected: true}
}

// Splice returns the unprotected concatenation of terms.
func Splice(terms ...Term) *Concat {
	return &Concat{Terms: terms}
}

// branching reports whether t renders with a top-level | that
// must be shielded from surrounding concatenation.
func branching(t Term) bool {
	a, ok := t.(*Alt)
	if !ok {
		return false
	}
	if len(a.Terms) == 1 {
		return branching(a.Terms[0])
	}
	return len(a.Terms) > 1
}

// seqSafe reports whether t can be juxtaposed with its neighbors
// without grouping. Units qualify; so do repetitions, whose
// trailing quantifier is already bound to their own body, and
// protected concatenations, which shield their own children.
func seqSafe(t Term) bool {
	switch n := t.(type) {
	case *Rep:
		return true
	case *Concat:
		return n.Protected
	}
	return t.unit()
}

func (c *Concat) Equals(t Term) bool {
	c2, ok := t.(*Concat)
	return ok && c.Protected == c2.Protected && termsEqual(c.Terms, c2.Terms)
}

func (c *Concat) text(dst *strings.Builder, redact bool) {
	for _, t := range c.Terms {
		if t == nil {
			continue
		}
		if branching(t) || (c.Protected && !seqSafe(t)) {
			dst.WriteString("(?:")
			t.text(dst, redact)
			dst.WriteByte(')')
			continue
		}
		t.text(dst, redact)
	}
}

func (c *Concat) unit() bool {
	return len(c.Terms) == 1 && c.Terms[0] != nil && c.Terms[0].unit()
}

func (c *Concat) walk(v Visitor) {
	for _, t := range c.Terms {
		if t != nil {
			Walk(v, t)
		}
	}
}

func (c *Concat) rewrite(r Rewriter) Term {
	terms := make([]Term, len(c.Terms))
	for i := range c.Terms {
		terms[i] = Rewrite(r, c.Terms[i])
	}
	return &Concat{Terms: terms, Protected: c.Protected}
}

// Alt matches the first of its sub-terms that matches, trying them
// left to right.
type Alt struct {
	Terms []Term
}

// OneOf returns the ordered alternation of terms.
func OneOf(terms ...Term) *Alt {
	return &Alt{Terms: terms}
}

func (a *Alt) Equals(t Term) bool {
	a2, ok := t.(*Alt)
	return ok && termsEqual(a.Terms, a2.Terms)
}

func (a *Alt) text(dst *strings.Builder, redact bool) {
	for i, t := range a.Terms {
		if i > 0 {
			dst.WriteByte('|')
		}
		if t != nil {
			t.text(dst, redact)
		}
	}
}

func (a *Alt) unit() bool {
	return len(a.Terms) == 1 && a.Terms[0] != nil && a.Terms[0].unit()
}

func (a *Alt) walk(v Visitor) {
	for _, t := range a.Terms {
		if t != nil {
			Walk(v, t)
		}
	}
}

func (a *Alt) rewrite(r Rewriter) Term {
	terms := make([]Term, len(a.Terms))
	for i := range a.Terms {
		terms[i] = Rewrite(r, a.Terms[i])
	}
	return &Alt{Terms: terms}
}

// RepMode selects the backtracking behavior of a repetition.
type RepMode int

const (
	// Greedy repetitions match as much as possible and give
	// back on backtracking.
	Greedy RepMode = iota
	// Reluctant repetitions match as little as possible and
	// extend on backtracking.
	Reluctant
	// Possessive repetitions match as much as possible and
	// never give back.
	Possessive
)

var modeNames = [...]string{
	Greedy:     "greedy",
	Reluctant:  "reluctant",
	Possessive: "possessive",
}

func (m RepMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// Unbounded as Rep.Max means the repetition has no upper bound.
const Unbounded = -1

// Rep matches Body repeated between Min and Max times.
type Rep struct {
	Body Term
	// Min is the least number of repetitions; Max is the greatest,
	// or Unbounded. Max must be >= Min when bounded.
	Min, Max int
	Mode     RepMode
}

// Star returns t repeated zero or more times.
func Star(t Term) *Rep {
	return &Rep{Body: t, Min: 0, Max: Unbounded}
}

// Plus returns t repeated one or more times.
func Plus(t Term) *Rep {
	return &Rep{Body: t, Min: 1, Max: Unbounded}
}

// Opt returns t repeated zero or one times.
func Opt(t Term) *Rep {
	return &Rep{Body: t, Min: 0, Max: 1}
}

// Exactly returns t repeated exactly n times.
func Exactly(t Term, n int) *Rep {
	return &Rep{Body: t, Min: n, Max: n}
}

// AtLeast returns t repeated n or more times.
func AtLeast(t Term, n int) *Rep {
	return &Rep{Body: t, Min: n, Max: Unbounded}
}

// Between returns t repeated between lo and hi times.
func Between(t Term, lo, hi int) *Rep {
	return &Rep{Body: t, Min: lo, Max: hi}
}

// WithMode returns a copy of r with the given repetition mode.
// The receiver is not modified.
func (r *Rep) WithMode(m RepMode) *Rep {
	c := *r
	c.Mode = m
	return &c
}

func (r *Rep) Equals(t Term) bool {
	r2, ok := t.(*Rep)
	return ok && r.Min == r2.Min && r.Max == r2.Max &&
		r.Mode == r2.Mode && Equal(r.Body, r2.Body)
}

func (r *Rep) text(dst *strings.Builder, redact bool) {
	switch {
	case r.Body == nil:
		dst.WriteString("(?:)")
	case r.Body.unit():
		r.Body.text(dst, redact)
	default:
		dst.WriteString("(?:")
		r.Body.text(dst, redact)
		dst.WriteByte(')')
	}
	switch {
	case r.Min == 0 && r.Max == Unbounded:
		dst.WriteByte('*')
	case r.Min == 1 && r.Max == Unbounded:
		dst.WriteByte('+')
	case r.Min == 0 && r.Max == 1:
		dst.WriteByte('?')
	case r.Max == Unbounded:
		dst.WriteByte('{')
		dst.WriteString(strconv.Itoa(r.Min))
		dst.WriteString(",}")
	case r.Min == r.Max:
		dst.WriteByte('{')
		dst.WriteString(strconv.Itoa(r.Min))
		dst.WriteByte('}')
	default:
		dst.WriteByte('{')
		dst.WriteString(strconv.Itoa(r.Min))
		dst.WriteByte(',')
		dst.WriteString(strconv.Itoa(r.Max))
		dst.WriteByte('}')
	}
	switch r.Mode {
	case Reluctant:
		dst.WriteByte('?')
	case Possessive:
		dst.WriteByte('+')
	}
}

// A repetition is never a unit: re-quantifying a+ without a group
// would produce a different construct (a++).
func (r *Rep) unit() bool { return false }

func (r *Rep) walk(v Visitor) {
	if r.Body != nil {
		Walk(v, r.Body)
	}
}

func (r *Rep) rewrite(rw Rewriter) Term {
	return &Rep{
		Body: Rewrite(rw, r.Body),
		Min:  r.Min,
		Max:  r.Max,
		Mode: r.Mode,
	}
}

// Look is a zero-width assertion on the text around the current
// position.
type Look struct {
	Body Term
	// Behind selects lookbehind (text before the position)
	// instead of lookahead.
	Behind bool
	// Negated asserts that Body does not match.
	Negated bool
}

// Followed asserts that the current position is followed by t.
func Followed(t Term) *Look {
	return &Look{Body: t}
}

// NotFollowed asserts that the current position is not followed by t.
func NotFollowed(t Term) *Look {
	return &Look{Body: t, Negated: true}
}

// Preceded asserts that the current position is preceded by t.
func Preceded(t Term) *Look {
	return &Look{Body: t, Behind: true}
}

// NotPreceded asserts that the current position is not preceded by t.
func NotPreceded(t Term) *Look {
	return &Look{Body: t, Behind: true, Negated: true}
}

func (l *Look) Equals(t Term) bool {
	l2, ok := t.(*Look)
	return ok && l.Behind == l2.Behind && l.Negated == l2.Negated &&
		Equal(l.Body, l2.Body)
}

func (l *Look) text(dst *strings.Builder, redact bool) {
	dst.WriteString("(?")
	if l.Behind {
		dst.WriteByte('<')
	}
	if l.Negated {
		dst.WriteByte('!')
	} else {
		dst.WriteByte('=')
	}
	if l.Body != nil {
		l.Body.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (l *Look) unit() bool { return true }

func (l *Look) walk(v Visitor) {
	if l.Body != nil {
		Walk(v, l.Body)
	}
}

func (l *Look) rewrite(r Rewriter) Term {
	return &Look{
		Body:    Rewrite(r, l.Body),
		Behind:  l.Behind,
		Negated: l.Negated,
	}
}

// Group is a capturing group. A group with an empty Name captures
// positionally, like a bare ( ) pair.
type Group struct {
	Name string
	Body Term
}

// Capture returns a named capturing group around t.
func Capture(name string, t Term) *Group {
	return &Group{Name: name, Body: t}
}

// Anon returns an anonymous capturing group around t.
func Anon(t Term) *Group {
	return &Group{Body: t}
}

func (g *Group) Equals(t Term) bool {
	g2, ok := t.(*Group)
	return ok && g.Name == g2.Name && Equal(g.Body, g2.Body)
}

func (g *Group) text(dst *strings.Builder, redact bool) {
	if g.Name == "" {
		dst.WriteByte('(')
	} else {
		dst.WriteString("(?<")
		dst.WriteString(g.Name)
		dst.WriteByte('>')
	}
	if g.Body != nil {
		g.Body.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (g *Group) unit() bool { return true }

func (g *Group) walk(v Visitor) {
	if g.Body != nil {
		Walk(v, g.Body)
	}
}

func (g *Group) rewrite(r Rewriter) Term {
	return &Group{Name: g.Name, Body: Rewrite(r, g.Body)}
}

// NonCap is a non-capturing group, optionally carrying inline
// matching flags that apply to its body.
type NonCap struct {
	Body Term
	// Flags is the flag string rendered after (?, such as "i" or
	// "im-s". Empty means a plain (?: ) group.
	Flags string
}

// NonCapture returns a plain non-capturing group around t.
func NonCapture(t Term) *NonCap {
	return &NonCap{Body: t}
}

// WithFlags returns a non-capturing group around t with the given
// inline flags.
func WithFlags(flags string, t Term) *NonCap {
	return &NonCap{Body: t, Flags: flags}
}

func (n *NonCap) Equals(t Term) bool {
	n2, ok := t.(*NonCap)
	return ok && n.Flags == n2.Flags && Equal(n.Body, n2.Body)
}

func (n *NonCap) text(dst *strings.Builder, redact bool) {
	dst.WriteString("(?")
	dst.WriteString(n.Flags)
	dst.WriteByte(':')
	if n.Body != nil {
		n.Body.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (n *NonCap) unit() bool { return true }

func (n *NonCap) walk(v Visitor) {
	if n.Body != nil {
		Walk(v, n.Body)
	}
}

func (n *NonCap) rewrite(r Rewriter) Term {
	return &NonCap{Body: Rewrite(r, n.Body), Flags: n.Flags}
}

// Atomic is an atomic (independent) group: once its body has
// matched, the engine never backtracks into it.
type Atomic struct {
	Body Term
}

// AtomicGroup returns an atomic group around t.
func AtomicGroup(t Term) *Atomic {
	return &Atomic{Body: t}
}

func (a *Atomic) Equals(t Term) bool {
	a2, ok := t.(*Atomic)
	return ok && Equal(a.Body, a2.Body)
}

func (a *Atomic) text(dst *strings.Builder, redact bool) {
	dst.WriteString("(?>")
	if a.Body != nil {
		a.Body.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (a *Atomic) unit() bool { return true }

func (a *Atomic) walk(v Visitor) {
	if a.Body != nil {
		Walk(v, a.Body)
	}
}

func (a *Atomic) rewrite(r Rewriter) Term {
	return &Atomic{Body: Rewrite(r, a.Body)}
}

// Ref is a backreference to a named capturing group.
type Ref struct {
	Name string
}

// Backref returns a backreference to the group named name.
func Backref(name string) Ref {
	return Ref{Name: name}
}

func (f Ref) Equals(t Term) bool {
	f2, ok := t.(Ref)
	return ok && f == f2
}

func (f Ref) text(dst *strings.Builder, redact bool) {
	dst.WriteString(`\k<`)
	dst.WriteString(f.Name)
	dst.WriteByte('>')
}

func (f Ref) unit() bool { return true }

func (f Ref) walk(v Visitor) {}

// Wrap surrounds the rendering of Body with verbatim prefix and
// suffix fragments. It exists for flavor rules that must emit
// dialect-specific syntax (say, a (?P<name> ... ) group) while
// keeping the body a structured tree.
type Wrap struct {
	Body   Term
	Prefix string
	Suffix string
	// Introduced lists the capturing group names the prefix
	// introduces, in order, so that group accounting still sees
	// groups hidden inside the verbatim fragments.
	Introduced []string
}

// Wrapped returns body surrounded by the verbatim fragments prefix
// and suffix, declaring the capturing group names introduced by
// prefix.
func Wrapped(prefix, suffix string, body Term, introduced ...string) *Wrap {
	return &Wrap{
		Body:       body,
		Prefix:     prefix,
		Suffix:     suffix,
		Introduced: introduced,
	}
}

func (w *Wrap) Equals(t Term) bool {
	w2, ok := t.(*Wrap)
	return ok && w.Prefix == w2.Prefix && w.Suffix == w2.Suffix &&
		slices.Equal(w.Introduced, w2.Introduced) &&
		Equal(w.Body, w2.Body)
}

func (w *Wrap) text(dst *strings.Builder, redact bool) {
	dst.WriteString(w.Prefix)
	if w.Body != nil {
		w.Body.text(dst, redact)
	}
	dst.WriteString(w.Suffix)
}

// A wrap whose fragments open and close one group around the body
// delimits itself; anything else is opaque, so assume the worst.
func (w *Wrap) unit() bool {
	return strings.HasPrefix(w.Prefix, "(") && strings.HasSuffix(w.Suffix, ")")
}

func (w *Wrap) walk(v Visitor) {
	if w.Body != nil {
		Walk(v, w.Body)
	}
}

func (w *Wrap) rewrite(r Rewriter) Term {
	return &Wrap{
		Body:       Rewrite(r, w.Body),
		Prefix:     w.Prefix,
		Suffix:     w.Suffix,
		Introduced: slices.Clone(w.Introduced),
	}
}

func termsEqual(a, b []Term) bool {
	return slices.EqualFunc(a, b, Equal)
}
