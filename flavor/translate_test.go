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
	"errors"
	"strings"
	"testing"

	"github.com/rexterm/rexterm/term"
	"golang.org/x/exp/slices"
)

func express(t *testing.T, f *Flavor, tree term.Term) *Pattern {
	t.Helper()
	p, err := f.Express(tree)
	if err != nil {
		t.Fatalf("express: %v", err)
	}
	return p
}

func TestStructuralDefault(t *testing.T) {
	// a flavor with no rules translates everything structurally
	f := New("null", 0)
	tree := term.Seq(
		term.C(term.LineStart),
		term.Capture("user", term.Plus(term.C(term.Word))),
		term.OneOf(term.Text("a"), term.Text("b")),
		term.Backref("user"),
	)
	out, advisories, err := f.Translate(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(advisories) != 0 {
		t.Errorf("unexpected advisories: %v", advisories)
	}
	if !term.Equal(out, tree) {
		t.Errorf("structural translation changed the tree: %q vs %q",
			term.ToString(out), term.ToString(tree))
	}
	// rebuilt, not aliased
	if out == term.Term(tree) {
		t.Error("translation returned the input root")
	}
}

func TestDispatchOrder(t *testing.T) {
	claim := func(text string) Rule {
		return func(tx *Translation, tm term.Term) (term.Term, error) {
			if _, ok := tm.(term.Lit); !ok {
				return nil, nil
			}
			return term.Raw(text, true), nil
		}
	}
	decline := func(tx *Translation, tm term.Term) (term.Term, error) {
		return nil, nil
	}
	// first claiming rule wins
	f := New("x", 0, claim("first"), claim("second"))
	out, _, err := f.Translate(term.Text("a"))
	if err != nil {
		t.Fatal(err)
	}
	if s := term.ToString(out); s != "first" {
		t.Errorf("got %q, want %q", s, "first")
	}
	// declining rules fall through
	f = New("x", 0, decline, claim("second"))
	out, _, err = f.Translate(term.Text("a"))
	if err != nil {
		t.Fatal(err)
	}
	if s := term.ToString(out); s != "second" {
		t.Errorf("got %q, want %q", s, "second")
	}
}

func TestRuleErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	fail := func(tx *Translation, tm term.Term) (term.Term, error) {
		if _, ok := tm.(term.Ref); ok {
			return nil, boom
		}
		return nil, nil
	}
	f := New("x", 0, fail)
	tree := term.Seq(term.Text("a"), term.Backref("x"), term.Text("b"))
	out, _, err := f.Translate(tree)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if out != nil {
		t.Error("failed translation still produced a tree")
	}
}

func TestTranslateDoesNotMutate(t *testing.T) {
	tree := term.Seq(
		term.Capture("g1", term.Text("x")),
		term.Plus(term.Text("a")).WithMode(term.Possessive),
	)
	snapshot := term.Copy(tree)
	if _, _, err := Lookup("ecma").Translate(tree); err != nil {
		t.Fatal(err)
	}
	if !term.Equal(tree, snapshot) {
		t.Errorf("translation modified its input: %q", term.ToString(tree))
	}
}

func TestGensymSkipsTakenNames(t *testing.T) {
	// g1 is taken by the input, so the synthesized capture is g2
	tree := term.Seq(
		term.Capture("g1", term.Text("x")),
		term.Plus(term.Text("a")).WithMode(term.Possessive),
	)
	p := express(t, Lookup("ecma"), tree)
	want := `(?<g1>x)(?=(?<g2>a+))\k<g2>`
	if p.Text != want {
		t.Errorf("got %q, want %q", p.Text, want)
	}
	if !slices.Equal(p.Groups, []string{"g1", "g2"}) {
		t.Errorf("groups: %v", p.Groups)
	}
}

func TestGensymDeterminism(t *testing.T) {
	tree := term.Seq(
		term.Plus(term.Text("a")).WithMode(term.Possessive),
		term.AtomicGroup(term.Text("b")),
	)
	first := express(t, Lookup("ecma"), tree)
	second := express(t, Lookup("ecma"), tree)
	if first.Text != second.Text {
		t.Errorf("translation is not deterministic: %q vs %q",
			first.Text, second.Text)
	}
	if !slices.Equal(first.Groups, second.Groups) {
		t.Errorf("groups differ: %v vs %v", first.Groups, second.Groups)
	}
}

func TestNestedAtomicsResolveInnerFirst(t *testing.T) {
	tree := term.AtomicGroup(term.Seq(
		term.AtomicGroup(term.Text("a")),
		term.Text("b"),
	))
	p := express(t, Lookup("ecma"), tree)
	// the inner atomic was encoded first, so it holds g1 and the
	// outer holds g2; the group list still reads in paren order
	want := `(?=(?<g2>(?=(?<g1>a))\k<g1>b))\k<g2>`
	if p.Text != want {
		t.Errorf("got %q, want %q", p.Text, want)
	}
	if !slices.Equal(p.Groups, []string{"g2", "g1"}) {
		t.Errorf("groups: %v", p.Groups)
	}
}

func TestUnsupportedErrorPath(t *testing.T) {
	tree := term.Seq(
		term.Text("x"),
		term.Star(term.Preceded(term.Text("a"))),
	)
	_, err := Lookup("ecma").Express(tree)
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want UnsupportedError", err)
	}
	if ue.Flavor != "ecma" {
		t.Errorf("flavor: %q", ue.Flavor)
	}
	if !strings.Contains(ue.Construct, "lookbehind") {
		t.Errorf("construct: %q", ue.Construct)
	}
	if ue.Path != "concat/rep/look-behind" {
		t.Errorf("path: %q", ue.Path)
	}
}

func TestExpressValidatesFirst(t *testing.T) {
	bad := term.Between(term.Text("a"), 3, 2)
	_, err := Lookup("strict").Express(bad)
	var ce *term.CheckError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want CheckError", err)
	}
	// Translate alone does not validate; the rewrite itself is total
	if _, _, err := Lookup("strict").Translate(bad); err != nil {
		t.Errorf("translate rejected what only Check should: %v", err)
	}
}

func TestRetranslationIsStable(t *testing.T) {
	trees := []term.Term{
		term.Plus(term.Text("a")).WithMode(term.Possessive),
		term.AtomicGroup(term.OneOf(term.Text("a"), term.Text("ab"))),
		term.Seq(term.C(term.InputStart), term.Text("x"), term.C(term.InputEnd)),
		term.C(term.Letter),
	}
	for _, name := range []string{"strict", "ecma", "legacy"} {
		f := Lookup(name)
		for i := range trees {
			if name == "ecma" && i == 3 {
				continue // ecma rejects \p{L} outright
			}
			once, _, err := f.Translate(trees[i])
			if err != nil {
				t.Fatalf("%s case %d: %v", name, i, err)
			}
			twice, _, err := f.Translate(once)
			if err != nil {
				t.Fatalf("%s case %d: retranslating: %v", name, i, err)
			}
			if !term.Equal(once, twice) {
				t.Errorf("%s case %d: not stable: %q vs %q", name, i,
					term.ToString(once), term.ToString(twice))
			}
		}
	}
}

func TestStrictEscalatesAdvisories(t *testing.T) {
	strictLegacy := Lookup("legacy").WithStrict(true)
	// advisory-free input is unaffected
	p := express(t, strictLegacy, term.Seq(term.Text("a"), term.C(term.Digit)))
	if len(p.Advisories) != 0 {
		t.Errorf("unexpected advisories: %v", p.Advisories)
	}
	// an approximation becomes a hard failure
	_, err := strictLegacy.Express(term.C(term.Letter))
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want UnsupportedError", err)
	}
	if ue.Note == "" {
		t.Error("escalated advisory lost its note")
	}
	// the lax flavor still approximates
	p = express(t, Lookup("legacy"), term.C(term.Letter))
	if p.Text != "[A-Za-z]" {
		t.Errorf("got %q", p.Text)
	}
	if len(p.Advisories) != 1 {
		t.Fatalf("advisories: %v", p.Advisories)
	}
	// WithStrict copies; the registered flavor is untouched
	if Lookup("legacy").IsStrict() {
		t.Error("WithStrict modified the registered flavor")
	}
}

func TestAdvisoryContents(t *testing.T) {
	p := express(t, Lookup("legacy"), term.Seq(term.Text("x"), term.C(term.Letter)))
	if len(p.Advisories) != 1 {
		t.Fatalf("advisories: %v", p.Advisories)
	}
	a := p.Advisories[0]
	if a.Construct != `\p{L}` {
		t.Errorf("construct: %q", a.Construct)
	}
	if a.Path != "concat/letter" {
		t.Errorf("path: %q", a.Path)
	}
	if !strings.Contains(a.Note, "[A-Za-z]") {
		t.Errorf("note: %q", a.Note)
	}
	if !strings.Contains(a.String(), "letter") {
		t.Errorf("string: %q", a.String())
	}
}

func TestFeatureString(t *testing.T) {
	if s := Feature(0).String(); s != "none" {
		t.Errorf("got %q", s)
	}
	f := Lookahead | Backrefs
	if s := f.String(); s != "lookahead+backrefs" {
		t.Errorf("got %q", s)
	}
	if !f.Has(Lookahead) || f.Has(Lookbehind) {
		t.Error("Has misreports membership")
	}
	if f.Has(Lookahead | Lookbehind) {
		t.Error("Has must require every bit")
	}
}
