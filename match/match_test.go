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

package match_test

import (
	"regexp"
	"testing"

	"github.com/rexterm/rexterm/flavor"
	"github.com/rexterm/rexterm/match"
	"github.com/rexterm/rexterm/term"
)

func TestBind(t *testing.T) {
	groups := []string{"day", "sep", "month", "sep", "year"}
	src := "on 14/07/2023 we shipped"
	idx := []int{3, 13, 3, 5, 5, 6, 6, 8, 8, 9, 9, 13}
	r, err := match.Bind(groups, src, idx)
	if err != nil {
		t.Fatal(err)
	}
	if r.Text != "14/07/2023" || r.Start != 3 || r.End != 13 {
		t.Errorf("whole match %q [%d,%d)", r.Text, r.Start, r.End)
	}
	if r.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", r.Len())
	}
	if c := r.At(0); c.Name != "day" || c.Text != "14" {
		t.Errorf("At(0) = %+v", c)
	}
	if c, ok := r.Get("year"); !ok || c.Text != "2023" {
		t.Errorf("Get(year) = %+v, %v", c, ok)
	}
	// Get resolves a reused name to its last participating capture.
	if c, ok := r.Get("sep"); !ok || c.Start != 8 {
		t.Errorf("Get(sep) = %+v, %v", c, ok)
	}
	all := r.All("sep")
	if len(all) != 2 || all[0].Start != 5 || all[1].Start != 8 {
		t.Errorf("All(sep) = %+v", all)
	}
}

func TestBindNonParticipating(t *testing.T) {
	groups := []string{"hour", "minute", "second"}
	src := "09:30"
	idx := []int{0, 5, 0, 2, 3, 5, -1, -1}
	r, err := match.Bind(groups, src, idx)
	if err != nil {
		t.Fatal(err)
	}
	if c := r.At(2); c.Participated() || c.Text != "" {
		t.Errorf("absent group bound to %+v", c)
	}
	if _, ok := r.Get("second"); ok {
		t.Error("Get(second) found a capture in a match without one")
	}
	if c, ok := r.Get("minute"); !ok || c.Text != "30" {
		t.Errorf("Get(minute) = %+v, %v", c, ok)
	}
}

func TestBindErrors(t *testing.T) {
	cases := []struct {
		name   string
		groups []string
		src    string
		idx    []int
	}{
		{"odd", []string{"a"}, "x", []int{0, 1, 0}},
		{"empty", []string{"a"}, "x", nil},
		{"count", []string{"a", "b"}, "x", []int{0, 1, 0, 1}},
		{"range", []string{"a"}, "x", []int{0, 1, 0, 9}},
		{"inverted", []string{"a"}, "xy", []int{0, 2, 2, 1}},
		{"negative", []string{"a"}, "xy", []int{0, 2, -2, 1}},
	}
	for _, tc := range cases {
		if _, err := match.Bind(tc.groups, tc.src, tc.idx); err == nil {
			t.Errorf("%s: Bind accepted %v", tc.name, tc.idx)
		}
	}
}

func TestFromRegexp(t *testing.T) {
	re := regexp.MustCompile(`(?P<user>\w+)@(?P<host>[^@\s]+)`)
	r, err := match.FromRegexp(re, "mail alice@example.com please")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil {
		t.Fatal("no match")
	}
	if c, ok := r.Get("user"); !ok || c.Text != "alice" {
		t.Errorf("Get(user) = %+v, %v", c, ok)
	}
	if c, ok := r.Get("host"); !ok || c.Text != "example.com" {
		t.Errorf("Get(host) = %+v, %v", c, ok)
	}
	r, err = match.FromRegexp(re, "no address here")
	if err != nil {
		t.Fatal(err)
	}
	if r != nil {
		t.Errorf("unexpected match %+v", r)
	}
}

func TestFromRegexpAnonymous(t *testing.T) {
	re := regexp.MustCompile(`(\w+)=(\w+)`)
	r, err := match.FromRegexp(re, "retries=3")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil {
		t.Fatal("no match")
	}
	if r.Len() != 2 || r.At(0).Name != "" || r.At(1).Name != "" {
		t.Fatalf("unexpected captures %+v", r)
	}
	if all := r.All(""); len(all) != 2 || all[0].Text != "retries" || all[1].Text != "3" {
		t.Errorf("All(\"\") = %+v", all)
	}
}

// Groups synthesized during translation land in the group list like
// any other, and binding picks them up positionally.
func TestBindTranslatedPattern(t *testing.T) {
	tree := term.Seq(
		term.Capture("key", term.Plus(term.C(term.Word))),
		term.Text("="),
		term.Anon(term.Plus(term.C(term.Digit))),
	)
	p, err := flavor.Lookup("re2").Express(tree)
	if err != nil {
		t.Fatal(err)
	}
	re := regexp.MustCompile(p.Text)
	src := "limit=250"
	r, err := match.Bind(p.Groups, src, re.FindStringSubmatchIndex(src))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := r.Get("key"); !ok || c.Text != "limit" {
		t.Errorf("Get(key) = %+v, %v", c, ok)
	}
	if c := r.At(1); c.Name != "" || c.Text != "250" {
		t.Errorf("At(1) = %+v", c)
	}
}
