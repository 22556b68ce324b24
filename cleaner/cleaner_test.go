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

package cleaner_test

import (
	"regexp"
	"testing"

	"github.com/rexterm/rexterm/cleaner"
	"github.com/rexterm/rexterm/flavor"
	"github.com/rexterm/rexterm/term"
)

func TestCleaners(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trim", "  a b  ", "a b"},
		{"trim", "a", "a"},
		{"collapse", "a\t\t b\n\nc", "a b c"},
		{"collapse", "  x  ", "x"},
		{"collapse", "", ""},
		{"lower", "MiXeD Case", "mixed case"},
		{"strip-control", "a\x00b\tc\n", "abc"},
		{"fold", "über", "uber"},
		{"fold", "Crème Brûlée", "Creme Brulee"},
		{"fold", "São Paulo", "Sao Paulo"},
		{"fold", "plain ascii", "plain ascii"},
	}
	for _, tc := range cases {
		c := cleaner.Named(tc.name)
		if c == nil {
			t.Fatalf("no cleaner %q", tc.name)
		}
		if c.Name() != tc.name {
			t.Errorf("Named(%q).Name() = %q", tc.name, c.Name())
		}
		if got := c.Clean(tc.in); got != tc.want {
			t.Errorf("%s(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestChain(t *testing.T) {
	c := cleaner.Chain(cleaner.FoldDiacritics(), cleaner.LowerCase(), cleaner.CollapseSpace())
	if c.Name() != "fold+lower+collapse" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.Clean("  Crème   BRÛLÉE "); got != "creme brulee" {
		t.Errorf("Clean = %q", got)
	}
}

func TestNamedComposite(t *testing.T) {
	c := cleaner.Named("collapse+lower")
	if c == nil {
		t.Fatal("composite name rejected")
	}
	if got := c.Clean("A  B"); got != "a b" {
		t.Errorf("Clean = %q", got)
	}
	if cleaner.Named("nope") != nil || cleaner.Named("trim+nope") != nil {
		t.Error("unknown names should yield nil")
	}
}

// An advisory-narrowed pattern becomes reliable again once the input
// is narrowed the same way.
func TestFoldBeforeNarrowedMatch(t *testing.T) {
	tree := term.Seq(
		term.C(term.InputStart),
		term.Capture("w", term.Plus(term.C(term.Letter))),
		term.C(term.InputEnd),
	)
	p, err := flavor.Lookup("legacy").Express(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Advisories) != 1 {
		t.Fatalf("advisories = %v", p.Advisories)
	}
	re := regexp.MustCompile(p.Text)
	const in = "Crème"
	if re.MatchString(in) {
		t.Fatalf("%s should not match %s before folding", in, p.Text)
	}
	if got := cleaner.Named("fold").Clean(in); !re.MatchString(got) {
		t.Errorf("%s should match %s", got, p.Text)
	}
}
