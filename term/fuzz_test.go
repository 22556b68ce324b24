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

package term_test

import (
	"testing"

	"github.com/rexterm/rexterm/term"
)

func FuzzDecode(f *testing.F) {
	seeds := []term.Term{
		term.Text("a"),
		term.C(term.Word),
		term.Seq(
			term.C(term.LineStart),
			term.Capture("user", term.Plus(term.C(term.Word))),
			term.Text("@"),
		),
		term.Plus(term.Text("a")).WithMode(term.Possessive),
		term.AtomicGroup(term.OneOf(term.Text("a"), term.Text("b"))),
		term.Wrapped("(?P<x>", ")", term.Text("a"), "x"),
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
		if err != nil {
			return
		}
		// whatever decodes must render, check and re-encode
		// without panicking
		_ = term.ToString(in)
		_ = term.ToRedacted(in)
		_ = term.Check(in)
		if in == nil {
			return
		}
		buf, err := term.Encode(in)
		if err != nil {
			t.Fatalf("re-encoding decoded term: %v", err)
		}
		out, err := term.Decode(buf)
		if err != nil {
			t.Fatalf("decoding re-encoded term: %v", err)
		}
		if !term.Equal(in, out) {
			t.Fatalf("roundtrip changed %q to %q",
				term.ToString(in), term.ToString(out))
		}
	})
}
