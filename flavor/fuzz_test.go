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

package flavor_test

import (
	"testing"

	"github.com/rexterm/rexterm/flavor"
	"github.com/rexterm/rexterm/term"
)

func FuzzTranslate(f *testing.F) {
	seeds := []term.Term{
		term.Text("a"),
		term.Plus(term.C(term.Word)).WithMode(term.Possessive),
		term.AtomicGroup(term.Plus(term.Text("a"))),
		term.Seq(
			term.Capture("k", term.Plus(term.C(term.Digit))),
			term.Backref("k"),
		),
		term.Seq(term.Preceded(term.Text("$")), term.Plus(term.C(term.Digit))),
		term.Seq(term.C(term.InputStart), term.C(term.Letter)),
	}
	for _, s := range seeds {
		buf, err := term.Encode(s)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(buf)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		in, err := term.Decode(data)
		if err != nil || in == nil {
			return
		}
		before, err := term.Encode(in)
		if err != nil {
			return
		}
		for _, name := range flavor.Flavors() {
			fl := flavor.Lookup(name)
			out, _, err := fl.Translate(in)
			if err != nil {
				continue
			}
			// translation must produce a renderable, well-formed
			// tree and must not touch its input
			_ = term.ToString(out)
			again, _, err := fl.Translate(in)
			if err != nil {
				t.Fatalf("%s: second translation failed: %v", name, err)
			}
			if !term.Equal(out, again) {
				t.Fatalf("%s: translation not deterministic for %q",
					name, term.ToString(in))
			}
		}
		after, err := term.Encode(in)
		if err != nil {
			t.Fatalf("re-encoding input: %v", err)
		}
		if string(before) != string(after) {
			t.Fatalf("translation mutated its input: %q became %q",
				before, after)
		}
	})
}
