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
	"github.com/rexterm/rexterm/term"
)

// common is the tail of every shipped rule table: feature-driven
// rewrites and guards that behave the same in every dialect.
var common = []Rule{
	ruleRepModes,
	ruleAtomic,
	ruleLook,
	ruleRef,
	ruleNamedGroups,
	ruleFlags,
	ruleInputAnchors,
}

// encodeAtomic is what the lookahead encoding of atomicity needs
// from a dialect: the capture it plants is named and referenced by
// name.
const encodeAtomic = Lookahead | Backrefs | NamedGroups

func withCommon(rules ...Rule) []Rule {
	return append(rules, common...)
}

// ruleRepModes rewrites possessive repetitions for dialects without
// native possessive quantifiers. The body is translated first, so
// nested possessive or atomic constructs are already resolved when
// the enclosing repetition is rewritten. The rewrite prefers a
// native atomic group and falls back to the lookahead encoding.
func ruleRepModes(tx *Translation, t term.Term) (term.Term, error) {
	r, ok := t.(*term.Rep)
	if !ok || r.Mode != term.Possessive || tx.Features().Has(Possessive) {
		return nil, nil
	}
	body, err := tx.Translate(r.Body)
	if err != nil {
		return nil, err
	}
	greedy := &term.Rep{Body: body, Min: r.Min, Max: r.Max, Mode: term.Greedy}
	if tx.Features().Has(AtomicGroups) {
		return &term.Atomic{Body: greedy}, nil
	}
	if tx.Features().Has(encodeAtomic) {
		return lookaheadAtomic(tx, greedy)
	}
	return nil, tx.Fail("possessive quantifier")
}

// ruleAtomic rewrites atomic groups for dialects without native
// (?>...) support.
func ruleAtomic(tx *Translation, t term.Term) (term.Term, error) {
	a, ok := t.(*term.Atomic)
	if !ok || tx.Features().Has(AtomicGroups) {
		return nil, nil
	}
	if !tx.Features().Has(encodeAtomic) {
		return nil, tx.Fail("atomic group")
	}
	body, err := tx.Translate(a.Body)
	if err != nil {
		return nil, err
	}
	return lookaheadAtomic(tx, body)
}

// lookaheadAtomic returns (?=(?<name>body))\k<name> with a fresh
// name: the lookahead matches the body once, the capture freezes
// what it matched, and the backreference consumes it. Backtracking
// can rerun the lookahead as a whole but never partially, which is
// exactly the atomic guarantee. The synthesized group and reference
// are dispatched back through the table so dialects with their own
// group spelling apply it to them as well; body is already
// translated, so the second pass leaves it alone.
func lookaheadAtomic(tx *Translation, body term.Term) (term.Term, error) {
	name := tx.Gensym()
	group, err := tx.Translate(term.Capture(name, body))
	if err != nil {
		return nil, err
	}
	ref, err := tx.Translate(term.Backref(name))
	if err != nil {
		return nil, err
	}
	return term.Seq(term.Followed(group), ref), nil
}

// ruleLook rejects lookaround the dialect cannot run. It never
// claims a supported assertion; the structural default rebuilds it.
func ruleLook(tx *Translation, t term.Term) (term.Term, error) {
	l, ok := t.(*term.Look)
	if !ok {
		return nil, nil
	}
	if l.Behind && !tx.Features().Has(Lookbehind) {
		return nil, tx.Fail("lookbehind assertion")
	}
	if !l.Behind && !tx.Features().Has(Lookahead) {
		return nil, tx.Fail("lookahead assertion")
	}
	return nil, nil
}

// ruleRef rejects backreferences in dialects without them. A
// dialect with only positional captures cannot express a named
// backreference either, since the algebra has no numeric refs.
func ruleRef(tx *Translation, t term.Term) (term.Term, error) {
	if _, ok := t.(term.Ref); !ok {
		return nil, nil
	}
	if !tx.Features().Has(Backrefs) {
		return nil, tx.Fail("backreference")
	}
	if !tx.Features().Has(NamedGroups) {
		return nil, tx.Fail("named backreference")
	}
	return nil, nil
}

// ruleNamedGroups drops group names for dialects whose captures are
// positional only. The group still captures at the same position;
// only the name is lost, so an advisory is recorded.
func ruleNamedGroups(tx *Translation, t term.Term) (term.Term, error) {
	g, ok := t.(*term.Group)
	if !ok || g.Name == "" || tx.Features().Has(NamedGroups) {
		return nil, nil
	}
	err := tx.Advise("(?<"+g.Name+">)", "group name dropped; capture is positional only")
	if err != nil {
		return nil, err
	}
	body, err := tx.Translate(g.Body)
	if err != nil {
		return nil, err
	}
	return term.Anon(body), nil
}

// ruleFlags rejects inline flag groups in dialects without them.
func ruleFlags(tx *Translation, t term.Term) (term.Term, error) {
	n, ok := t.(*term.NonCap)
	if ok && n.Flags != "" && !tx.Features().Has(InlineFlags) {
		return nil, tx.Fail("inline flags group")
	}
	return nil, nil
}

// ruleInputAnchors loosens input-boundary anchors to line anchors
// for dialects that only have ^ and $. The result matches the same
// positions only while multi-line mode is off, so an advisory is
// recorded.
func ruleInputAnchors(tx *Translation, t term.Term) (term.Term, error) {
	c, ok := t.(term.Class)
	if !ok || !c.InputAnchor() || tx.Features().Has(InputAnchors) {
		return nil, nil
	}
	switch c.Tag {
	case term.InputStart:
		err := tx.Advise(term.ToString(c),
			"rewritten to ^, which also matches after newlines in multi-line mode")
		if err != nil {
			return nil, err
		}
		return term.C(term.LineStart), nil
	default:
		err := tx.Advise(term.ToString(c),
			"rewritten to $, which also matches before newlines in multi-line mode")
		if err != nil {
			return nil, err
		}
		return term.C(term.LineEnd), nil
	}
}

// rulePGroups renders named groups as (?P<name>...) and named
// backreferences as (?P=name), the spelling PCRE-lineage dialects
// use. The wrap keeps the name visible to group accounting.
func rulePGroups(tx *Translation, t term.Term) (term.Term, error) {
	switch n := t.(type) {
	case *term.Group:
		if n.Name == "" || !tx.Features().Has(NamedGroups) {
			return nil, nil
		}
		body, err := tx.Translate(n.Body)
		if err != nil {
			return nil, err
		}
		return term.Wrapped("(?P<"+n.Name+">", ")", body, n.Name), nil
	case term.Ref:
		if !tx.Features().Has(Backrefs) {
			// decline so ruleRef reports it
			return nil, nil
		}
		return term.Raw("(?P="+n.Name+")", true), nil
	}
	return nil, nil
}

// ruleASCIIWord pins \w and \W to the explicit ASCII set, for
// dialects whose word class must not depend on engine locale or
// Unicode tables.
func ruleASCIIWord(tx *Translation, t term.Term) (term.Term, error) {
	c, ok := t.(term.Class)
	if !ok {
		return nil, nil
	}
	switch c.Tag {
	case term.Word:
		return term.Raw("[0-9A-Z_a-z]", true), nil
	case term.NotWord:
		return term.Raw("[^0-9A-Z_a-z]", true), nil
	}
	return nil, nil
}

// ruleNoUnicode rejects Unicode category classes outright; the
// dialect has no runtime tables to honor them.
func ruleNoUnicode(tx *Translation, t term.Term) (term.Term, error) {
	c, ok := t.(term.Class)
	if ok && c.Unicode() && !tx.Features().Has(UnicodeClasses) {
		return nil, tx.Fail("unicode category class " + term.ToString(c))
	}
	return nil, nil
}

// ruleApproxUnicode substitutes the nearest ASCII range for a
// Unicode category class and records the narrowing.
func ruleApproxUnicode(tx *Translation, t term.Term) (term.Term, error) {
	c, ok := t.(term.Class)
	if !ok || !c.Unicode() || tx.Features().Has(UnicodeClasses) {
		return nil, nil
	}
	var out term.Lit
	switch c.Tag {
	case term.Letter:
		out = term.Raw("[A-Za-z]", true)
	case term.LowerLetter:
		out = term.Raw("[a-z]", true)
	case term.UpperLetter:
		out = term.Raw("[A-Z]", true)
	case term.DecimalDigit:
		out = term.Raw("[0-9]", true)
	default:
		return nil, tx.Fail("unicode category class " + term.ToString(c))
	}
	err := tx.Advise(term.ToString(c), "approximated as ASCII range "+out.Text)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ruleFinalNewline approximates \Z, which the dialect lacks, with
// \z, which it has. The two differ only when the input ends with a
// newline.
func ruleFinalNewline(tx *Translation, t term.Term) (term.Term, error) {
	c, ok := t.(term.Class)
	if !ok || c.Tag != term.InputEndLine || !tx.Features().Has(InputAnchors) {
		return nil, nil
	}
	err := tx.Advise(term.ToString(c),
		`approximated as \z, which will not match just before a final newline`)
	if err != nil {
		return nil, err
	}
	return term.C(term.InputEnd), nil
}
