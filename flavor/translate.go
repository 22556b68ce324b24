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
	"strconv"
	"strings"

	"github.com/rexterm/rexterm/term"
)

// Rule inspects one node during translation. It returns a non-nil
// replacement to claim the node, (nil, nil) to decline it so later
// rules and finally the structural default can have it, or an error
// to abort the whole translation. A rule that claims a node is
// responsible for translating the node's children itself, normally
// through tx.Translate.
type Rule func(tx *Translation, t term.Term) (term.Term, error)

// Translation carries the state of a single Translate or Express
// call: the flavor, the name pool for fresh captures, advisories
// found so far, and the path to the node being dispatched. A
// Translation is used by one goroutine at a time; separate calls on
// the same Flavor never share one.
type Translation struct {
	flavor     *Flavor
	names      map[string]bool
	nextID     int
	advisories []Advisory
	path       []string
}

func (f *Flavor) begin(t term.Term) *Translation {
	return &Translation{flavor: f, names: term.Names(t)}
}

// Translate rewrites t into a tree expressible in flavor f. It
// returns the rewritten tree and any advisories recorded along the
// way. The input is never modified, and equal inputs produce equal
// outputs: generated capture names restart for every call.
func (f *Flavor) Translate(t term.Term) (term.Term, []Advisory, error) {
	tx := f.begin(t)
	out, err := tx.Translate(t)
	if err != nil {
		return nil, nil, err
	}
	return out, tx.advisories, nil
}

// Pattern is the final product of expressing a tree in a dialect.
type Pattern struct {
	// Text is the pattern in the dialect's syntax.
	Text string
	// Groups lists the capturing group names of Text in engine
	// numbering order; anonymous groups appear as empty strings.
	// Index i corresponds to engine group number i+1.
	Groups []string
	// Advisories lists the approximations the translation made.
	Advisories []Advisory
}

// Express validates t, translates it for flavor f and renders the
// result. The group list is derived from the translated tree, so
// captures synthesized during translation are included at their
// final positions.
func (f *Flavor) Express(t term.Term) (*Pattern, error) {
	if err := term.Check(t); err != nil {
		return nil, err
	}
	tx := f.begin(t)
	out, err := tx.Translate(t)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		Text:       term.ToString(out),
		Groups:     term.CaptureNames(out),
		Advisories: tx.advisories,
	}, nil
}

// Translate dispatches t through the flavor's rule table and
// returns its translation. Rules use it to translate child terms.
func (tx *Translation) Translate(t term.Term) (term.Term, error) {
	if t == nil {
		return nil, nil
	}
	tx.path = append(tx.path, describe(t))
	out, err := tx.dispatch(t)
	tx.path = tx.path[:len(tx.path)-1]
	return out, err
}

func (tx *Translation) dispatch(t term.Term) (term.Term, error) {
	for _, r := range tx.flavor.rules {
		out, err := r(tx, t)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return out, nil
		}
	}
	return tx.structural(t)
}

// structural is the default for nodes no rule claims: leaves pass
// through, interior nodes are rebuilt around translated children.
func (tx *Translation) structural(t term.Term) (term.Term, error) {
	switch n := t.(type) {
	case term.Lit, term.Class, term.Ref:
		return t, nil
	case *term.Concat:
		terms, err := tx.translateAll(n.Terms)
		if err != nil {
			return nil, err
		}
		return &term.Concat{Terms: terms, Protected: n.Protected}, nil
	case *term.Alt:
		terms, err := tx.translateAll(n.Terms)
		if err != nil {
			return nil, err
		}
		return &term.Alt{Terms: terms}, nil
	case *term.Rep:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Rep{Body: body, Min: n.Min, Max: n.Max, Mode: n.Mode}, nil
	case *term.Look:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Look{Body: body, Behind: n.Behind, Negated: n.Negated}, nil
	case *term.Group:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Group{Name: n.Name, Body: body}, nil
	case *term.NonCap:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.NonCap{Body: body, Flags: n.Flags}, nil
	case *term.Atomic:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Atomic{Body: body}, nil
	case *term.Wrap:
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return &term.Wrap{
			Body:       body,
			Prefix:     n.Prefix,
			Suffix:     n.Suffix,
			Introduced: n.Introduced,
		}, nil
	default:
		// the algebra is closed; reaching this is a bug
		return nil, fmt.Errorf("flavor: unhandled term %T", t)
	}
}

func (tx *Translation) translateAll(terms []term.Term) ([]term.Term, error) {
	out := make([]term.Term, len(terms))
	for i := range terms {
		t, err := tx.Translate(terms[i])
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Features returns the feature set of the flavor being translated
// for.
func (tx *Translation) Features() Feature {
	return tx.flavor.Features
}

// Gensym returns a capture group name that collides with nothing in
// the input tree and with no name issued earlier in this
// translation. Names are issued deterministically: g1, g2, ...,
// skipping taken ones.
func (tx *Translation) Gensym() string {
	for {
		tx.nextID++
		name := "g" + strconv.Itoa(tx.nextID)
		if !tx.names[name] {
			tx.names[name] = true
			return name
		}
	}
}

// Fail returns the UnsupportedError for the construct at the
// current location.
func (tx *Translation) Fail(construct string) error {
	return &UnsupportedError{
		Flavor:    tx.flavor.Name,
		Construct: construct,
		Path:      tx.Location(),
	}
}

// Advise records that construct was approximated as note describes.
// In a strict flavor it returns the escalated error instead; rules
// must propagate a non-nil return.
func (tx *Translation) Advise(construct, note string) error {
	if tx.flavor.strict {
		return &UnsupportedError{
			Flavor:    tx.flavor.Name,
			Construct: construct,
			Path:      tx.Location(),
			Note:      note,
		}
	}
	tx.advisories = append(tx.advisories, Advisory{
		Construct: construct,
		Path:      tx.Location(),
		Note:      note,
	})
	return nil
}

// Location describes where in the input tree dispatch currently is.
func (tx *Translation) Location() string {
	if len(tx.path) == 0 {
		return "root"
	}
	return strings.Join(tx.path, "/")
}

func describe(t term.Term) string {
	switch n := t.(type) {
	case term.Lit:
		return "lit"
	case term.Class:
		return n.Tag.String()
	case term.Ref:
		return "ref(" + n.Name + ")"
	case *term.Concat:
		return "concat"
	case *term.Alt:
		return "alt"
	case *term.Rep:
		return "rep"
	case *term.Look:
		if n.Behind {
			return "look-behind"
		}
		return "look-ahead"
	case *term.Group:
		if n.Name == "" {
			return "group"
		}
		return "group(" + n.Name + ")"
	case *term.NonCap:
		return "noncap"
	case *term.Atomic:
		return "atomic"
	case *term.Wrap:
		return "wrap"
	default:
		return "term"
	}
}
