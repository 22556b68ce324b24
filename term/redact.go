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
	"encoding/base32"
	"encoding/binary"

	"github.com/dchest/siphash"
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// redactString produces a deterministic opaque token for s. Equal
// inputs produce equal tokens, so redacted patterns can still be
// correlated across log lines without revealing literal text. The
// token alphabet (A-Z, 2-7) contains no regex metacharacters.
func redactString(s string) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], siphash.Hash(0, 1, []byte(s)))
	return b32.EncodeToString(buf[:])
}

// Redact returns a copy of t with every literal replaced by the
// opaque token for its text. Classes, group names, bounds and
// structure are preserved, so the shape of a pattern stays
// recognizable while its content cannot leak.
func Redact(t Term) Term {
	if t == nil {
		return nil
	}
	return Rewrite(redactor{}, t)
}

type redactor struct{}

func (redactor) Rewrite(t Term) Term {
	if l, ok := t.(Lit); ok {
		return Lit{Text: redactString(l.Text)}
	}
	return t
}

func (redactor) Walk(Term) Rewriter { return redactor{} }
